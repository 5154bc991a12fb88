package wire

import (
	"os"

	"github.com/saleslv/premium-api/pkg/apierr"
)

// Attachment is a local file to upload with a request.
type Attachment struct {
	// Path is the local file to read.
	Path string
	// Type is the declared MIME type, e.g. "image/jpeg".
	Type string
	// Name is the declared upload name. It is used as the form field name
	// and as the filename of the part.
	Name string
}

// ValidateAttachments checks that every entry names a path, a type and a
// name, and that its path can be opened for reading as a regular file.
// It stops at the first bad entry; the returned error is an *apierr.Error
// with code MalformedAttachmentList or AttachmentFileNotReadable.
func ValidateAttachments(files []Attachment) error {
	for i, f := range files {
		if f.Path == "" || f.Type == "" || f.Name == "" {
			return apierr.Newf(apierr.MalformedAttachmentList,
				"Attachment #%d must have a path, a type and a name", i)
		}
		if err := checkReadable(f.Path); err != nil {
			return apierr.Newf(apierr.AttachmentFileNotReadable,
				"Attachment file is not readable: %s", f.Path)
		}
	}
	return nil
}

func checkReadable(path string) error {
	fh, err := os.Open(path)
	if err != nil {
		return err
	}
	defer fh.Close()

	info, err := fh.Stat()
	if err != nil {
		return err
	}
	if !info.Mode().IsRegular() {
		return os.ErrInvalid
	}
	return nil
}
