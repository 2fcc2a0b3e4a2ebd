package fields

import (
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/goliatone/go-dynform/internal/i18n"
	"github.com/goliatone/go-dynform/pkg/orchestrator"
	"github.com/goliatone/go-dynform/pkg/schema"
	"github.com/goliatone/go-dynform/pkg/view"
)

const sniffLen = 512

// FileUploadOptions configures a FileUpload binding.
type FileUploadOptions struct {
	Common
	Multiple   bool
	ImagesOnly bool
}

// FileUpload binds a list of file descriptors.
type FileUpload struct {
	base
	opts FileUploadOptions
}

// NewFileUpload binds a file picker to name.
func NewFileUpload(ctx *orchestrator.Context, name string, opts FileUploadOptions) (*FileUpload, error) {
	b, err := newBase(ctx, name, opts.Common)
	if err != nil {
		return nil, err
	}
	return &FileUpload{base: b, opts: opts}, nil
}

// Files returns the picked files.
func (f *FileUpload) Files() []schema.FileDescriptor { return asFiles(f.raw()) }

// Add records picked files. Multiple uploads append; single uploads keep
// only the first of files. Image-only uploads reject non-image types.
func (f *FileUpload) Add(files ...schema.FileDescriptor) error {
	if len(files) == 0 {
		return nil
	}
	files = slices.Clone(files)
	for i := range files {
		if files[i].Name == "" {
			files[i].Name = files[i].DisplayName()
		}
		if files[i].Type == "" {
			files[i].Type = "application/octet-stream"
		}
		if f.opts.ImagesOnly && !files[i].IsImage() {
			return &MessageError{Err: ErrNotImage, Message: f.ctx.T(i18n.KeyImagesOnly, files[i].Name)}
		}
	}
	if !f.opts.Multiple {
		return f.write([]schema.FileDescriptor{files[0]})
	}
	return f.write(append(f.Files(), files...))
}

// AddPaths describes local files and adds them.
func (f *FileUpload) AddPaths(paths ...string) error {
	files := make([]schema.FileDescriptor, 0, len(paths))
	for _, p := range paths {
		d, err := Describe(p)
		if err != nil {
			return err
		}
		files = append(files, d)
	}
	return f.Add(files...)
}

// Remove drops the file at index.
func (f *FileUpload) Remove(index int) error {
	files := f.Files()
	if index < 0 || index >= len(files) {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	return f.write(append(files[:index:index], files[index+1:]...))
}

// ButtonLabel is the localized picker label.
func (f *FileUpload) ButtonLabel() string {
	if f.opts.Multiple {
		return f.ctx.T(i18n.KeyPickFiles)
	}
	return f.ctx.T(i18n.KeyPickFile)
}

// View snapshots the binding.
func (f *FileUpload) View() view.Field {
	v := f.view(view.KindFileUpload)
	files := f.Files()
	v.Files = files
	v.Value = files
	v.Multiple = f.opts.Multiple
	v.ImagesOnly = f.opts.ImagesOnly
	v.Placeholder = f.ButtonLabel()
	names := make([]string, 0, len(files))
	for _, d := range files {
		names = append(names, d.DisplayName())
	}
	v.Display = strings.Join(names, ", ")
	return v
}

// Node implements view.Component.
func (f *FileUpload) Node() view.Node { return view.FieldNode(f.View()) }

// Describe builds a descriptor for a local file. The MIME type comes from the
// extension, falling back to sniffing the first bytes.
func Describe(path string) (schema.FileDescriptor, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return schema.FileDescriptor{}, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return schema.FileDescriptor{}, err
	}
	if info.IsDir() {
		return schema.FileDescriptor{}, fmt.Errorf("fields: %s is a directory", path)
	}

	mediaType := mime.TypeByExtension(strings.ToLower(filepath.Ext(abs)))
	if mediaType == "" {
		mediaType, err = sniff(abs)
		if err != nil {
			return schema.FileDescriptor{}, err
		}
	}
	if parsed, _, err := mime.ParseMediaType(mediaType); err == nil {
		mediaType = parsed
	}

	return schema.FileDescriptor{
		URI:  (&url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}).String(),
		Name: info.Name(),
		Type: mediaType,
		Size: info.Size(),
	}, nil
}

func sniff(path string) (string, error) {
	fh, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer fh.Close()
	buf := make([]byte, sniffLen)
	n, err := io.ReadFull(fh, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", err
	}
	return http.DetectContentType(buf[:n]), nil
}
