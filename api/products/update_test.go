package products

import (
	"bytes"
	"errors"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"coachfit_server/lib"

	"github.com/MonkyMars/gecho"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validUpdatePayload = `{
	"title": "Programa de fuerza",
	"description": "Doce semanas",
	"price": 4500,
	"type": "program"
}`

func newMultipartRequest(t *testing.T, payload string, imageContent []byte) (body *bytes.Buffer, contentType string) {
	t.Helper()

	body = &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	if payload != "" {
		require.NoError(t, writer.WriteField("data", payload))
	}
	if imageContent != nil {
		part, err := writer.CreateFormFile("image", "cover.jpg")
		require.NoError(t, err)
		_, err = part.Write(imageContent)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	return body, writer.FormDataContentType()
}

func TestParseMultipartUpdateWithImage(t *testing.T) {
	prm := NewProductRoutesManager(gecho.NewDefaultLogger(), nil, nil)

	content := []byte("jpeg-bytes")
	body, contentType := newMultipartRequest(t, validUpdatePayload, content)

	req := httptest.NewRequest("PUT", "/products/x", body)
	req.Header.Set("Content-Type", contentType)

	parsed, file, name, err := prm.parseMultipartUpdate(req)
	require.NoError(t, err)
	require.NotNil(t, file)
	defer file.Close()

	assert.Equal(t, "Programa de fuerza", parsed.Title)
	assert.Equal(t, "cover.jpg", name)

	got, err := io.ReadAll(file)
	require.NoError(t, err)
	assert.Equal(t, content, got)
}

func TestParseMultipartUpdateWithoutImage(t *testing.T) {
	prm := NewProductRoutesManager(gecho.NewDefaultLogger(), nil, nil)

	body, contentType := newMultipartRequest(t, validUpdatePayload, nil)

	req := httptest.NewRequest("PUT", "/products/x", body)
	req.Header.Set("Content-Type", contentType)

	parsed, file, name, err := prm.parseMultipartUpdate(req)
	require.NoError(t, err)
	assert.Nil(t, file)
	assert.Empty(t, name)
	assert.Equal(t, "Programa de fuerza", parsed.Title)
}

func TestParseMultipartUpdateMissingPayload(t *testing.T) {
	prm := NewProductRoutesManager(gecho.NewDefaultLogger(), nil, nil)

	body, contentType := newMultipartRequest(t, "", []byte("jpeg-bytes"))

	req := httptest.NewRequest("PUT", "/products/x", body)
	req.Header.Set("Content-Type", contentType)

	_, _, _, err := prm.parseMultipartUpdate(req)

	var validationErr *lib.ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, "data", validationErr.Errors[0].Field)
}

func TestParseMultipartUpdateInvalidPayload(t *testing.T) {
	prm := NewProductRoutesManager(gecho.NewDefaultLogger(), nil, nil)

	body, contentType := newMultipartRequest(t, `{"title": "x"}`, nil)

	req := httptest.NewRequest("PUT", "/products/x", body)
	req.Header.Set("Content-Type", contentType)

	_, _, _, err := prm.parseMultipartUpdate(req)

	var validationErr *lib.ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.NotEmpty(t, validationErr.Errors)
}
