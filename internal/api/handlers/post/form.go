package post

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"

	"Scribe/internal/core/media"
)

// maxBodyBytes leaves room above the image limit so oversized images reach
// validation and get a field error instead of a truncated body
const maxBodyBytes = 2*media.MaxImageSize + 1<<20

// postForm is the parsed body of a create or update request.
// Nil fields were not sent.
type postForm struct {
	title       *string
	content     *string
	image       *media.Upload
	removeImage bool
	file        multipart.File
}

// Close releases the uploaded file, if any
func (f *postForm) Close() {
	if f.file != nil {
		_ = f.file.Close()
	}
}

// parsePostForm accepts multipart/form-data (needed for images) and JSON bodies
func parsePostForm(w http.ResponseWriter, r *http.Request) (*postForm, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		return parseMultipart(r)
	}
	return parseJSON(r.Body)
}

func parseMultipart(r *http.Request) (*postForm, error) {
	if err := r.ParseMultipartForm(1 << 20); err != nil {
		return nil, fmt.Errorf("invalid multipart body: %w", err)
	}

	form := &postForm{
		title:   formValue(r.MultipartForm, "title"),
		content: formValue(r.MultipartForm, "content"),
	}

	file, header, err := r.FormFile("image")
	switch {
	case err == nil:
		form.file = file
		form.image = &media.Upload{
			Content:  file,
			Filename: header.Filename,
			Size:     header.Size,
		}
	case errors.Is(err, http.ErrMissingFile):
		// an empty "image" value clears the image
		if v := formValue(r.MultipartForm, "image"); v != nil && *v == "" {
			form.removeImage = true
		}
	default:
		return nil, fmt.Errorf("invalid image upload: %w", err)
	}

	return form, nil
}

func formValue(form *multipart.Form, key string) *string {
	values, ok := form.Value[key]
	if !ok || len(values) == 0 {
		return nil
	}
	return &values[0]
}

func parseJSON(body io.Reader) (*postForm, error) {
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("invalid JSON body: %w", err)
	}

	form := &postForm{}
	for key, dst := range map[string]**string{"title": &form.title, "content": &form.content} {
		value, ok := raw[key]
		if !ok {
			continue
		}
		var s string
		if err := json.Unmarshal(value, &s); err != nil {
			return nil, fmt.Errorf("%s must be a string", key)
		}
		*dst = &s
	}
	if value, ok := raw["image"]; ok && string(value) == "null" {
		form.removeImage = true
	}
	return form, nil
}
