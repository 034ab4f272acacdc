package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Henzp/tienda-plantas/media"
	"github.com/Henzp/tienda-plantas/middlewares"
	"github.com/Henzp/tienda-plantas/sessions"
)

type fakeMedia struct {
	uploaded   []string
	destroyErr error
	listErr    error
	images     []media.Image
}

func (f *fakeMedia) Upload(ctx context.Context, file io.Reader, filename string) (media.Image, error) {
	f.uploaded = append(f.uploaded, filename)
	return media.Image{PublicID: "tienda-plantas/" + filename, URL: "https://res.example.com/" + filename}, nil
}

func (f *fakeMedia) Destroy(ctx context.Context, publicID string) error { return f.destroyErr }

func (f *fakeMedia) List(ctx context.Context) ([]media.Image, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.images, nil
}

func (f *fakeMedia) Ping(ctx context.Context) error { return nil }

func newTestApp(t *testing.T, svc media.Service) (*fiber.App, *sessions.Store) {
	t.Helper()
	sess := sessions.NewStore(time.Hour)
	mw := middlewares.New(sess)
	ct := NewController(svc, zap.NewNop())

	app := fiber.New()
	app.Post("/api/upload-images", mw.LoadSession, mw.RequireAdmin, ct.UploadImages)
	app.Delete("/api/delete-image/:publicId", mw.LoadSession, mw.RequireAdmin, ct.DeleteImage)
	app.Get("/api/uploaded-images", mw.LoadSession, mw.RequireAdmin, ct.ListImages)
	return app, sess
}

func adminCookie(t *testing.T, sess *sessions.Store) *http.Cookie {
	t.Helper()
	token := sess.Create(sessions.Identity{Nombre: "Administrador", IsAdmin: true})
	return &http.Cookie{Name: sessions.CookieName, Value: token}
}

func multipartUpload(t *testing.T, contentType string, names ...string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, name := range names {
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition", `form-data; name="images"; filename="`+name+`"`)
		header.Set("Content-Type", contentType)
		part, err := w.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write([]byte("datos-de-imagen"))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/api/upload-images", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestUploadImages(t *testing.T) {
	fake := &fakeMedia{}
	app, sess := newTestApp(t, fake)

	req := multipartUpload(t, "image/png", "a.png", "b.png")
	req.AddCookie(adminCookie(t, sess))
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, float64(2), body["count"])
	assert.Len(t, fake.uploaded, 2)
}

func TestUploadRejectsNonImages(t *testing.T) {
	fake := &fakeMedia{}
	app, sess := newTestApp(t, fake)

	req := multipartUpload(t, "application/pdf", "doc.pdf")
	req.AddCookie(adminCookie(t, sess))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Empty(t, fake.uploaded)
}

func TestUploadRejectsTooManyFiles(t *testing.T) {
	fake := &fakeMedia{}
	app, sess := newTestApp(t, fake)

	names := make([]string, media.MaxFiles+1)
	for i := range names {
		names[i] = "img.png"
	}
	req := multipartUpload(t, "image/png", names...)
	req.AddCookie(adminCookie(t, sess))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Empty(t, fake.uploaded)
}

func TestUploadRequiresAdmin(t *testing.T) {
	app, _ := newTestApp(t, &fakeMedia{})

	resp, err := app.Test(multipartUpload(t, "image/png", "a.png"))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestDeleteImage(t *testing.T) {
	fake := &fakeMedia{}
	app, sess := newTestApp(t, fake)

	req := httptest.NewRequest("DELETE", "/api/delete-image/planta-1", nil)
	req.AddCookie(adminCookie(t, sess))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	fake.destroyErr = media.ErrNotFound
	req = httptest.NewRequest("DELETE", "/api/delete-image/no-existe", nil)
	req.AddCookie(adminCookie(t, sess))
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestListImagesDegradesToEmpty(t *testing.T) {
	fake := &fakeMedia{listErr: errors.New("cloudinary caído")}
	app, sess := newTestApp(t, fake)

	req := httptest.NewRequest("GET", "/api/uploaded-images", nil)
	req.AddCookie(adminCookie(t, sess))
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var images []media.Image
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&images))
	assert.Empty(t, images)
}
