package controllers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Henzp/tienda-plantas/media"
	"github.com/Henzp/tienda-plantas/responses"
)

type Controller struct {
	Media media.Service
	Log   *zap.Logger
}

func NewController(svc media.Service, log *zap.Logger) *Controller {
	return &Controller{Media: svc, Log: log}
}

// UploadImages forwards each multipart file to the hosted service. Rejects
// non-images, oversized files, and more than the per-request ceiling.
func (ct *Controller) UploadImages(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 30*time.Second)
	defer cancel()

	form, err := c.MultipartForm()
	if err != nil {
		return responses.Error(c, fiber.StatusBadRequest, "Formato de solicitud inválido")
	}
	files := form.File["images"]
	if len(files) == 0 {
		return responses.Error(c, fiber.StatusBadRequest, "No se subieron archivos")
	}
	if len(files) > media.MaxFiles {
		return responses.Error(c, fiber.StatusBadRequest,
			fmt.Sprintf("Máximo %d imágenes por solicitud", media.MaxFiles))
	}

	for _, fh := range files {
		if !strings.HasPrefix(fh.Header.Get("Content-Type"), "image/") {
			return responses.Error(c, fiber.StatusBadRequest, "Solo se permiten archivos de imagen")
		}
		if fh.Size > media.MaxFileSize {
			return responses.Error(c, fiber.StatusBadRequest, "El archivo excede el tamaño máximo de 10 MB")
		}
	}

	images := make([]media.Image, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			return responses.Error(c, fiber.StatusBadRequest, "No se pudo leer el archivo")
		}
		img, err := ct.Media.Upload(ctx, f, fh.Filename)
		f.Close()
		if err != nil {
			ct.Log.Error("error subiendo imagen", zap.String("archivo", fh.Filename), zap.Error(err))
			return responses.Error(c, fiber.StatusInternalServerError, "Error subiendo imágenes")
		}
		images = append(images, img)
	}

	return c.JSON(fiber.Map{
		"message": "Imágenes subidas exitosamente",
		"images":  images,
		"count":   len(images),
	})
}

func (ct *Controller) DeleteImage(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 30*time.Second)
	defer cancel()

	publicID := c.Params("publicId")
	if err := ct.Media.Destroy(ctx, publicID); err != nil {
		if errors.Is(err, media.ErrNotFound) {
			return responses.Error(c, fiber.StatusNotFound, "Imagen no encontrada")
		}
		ct.Log.Error("error eliminando imagen", zap.String("publicId", publicID), zap.Error(err))
		return responses.Error(c, fiber.StatusInternalServerError, "Error eliminando imagen")
	}
	return responses.Message(c, fiber.StatusOK, "Imagen eliminada exitosamente")
}

// ListImages returns the folder listing, newest first. A hosted-service
// failure degrades to an empty list.
func (ct *Controller) ListImages(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 30*time.Second)
	defer cancel()

	images, err := ct.Media.List(ctx)
	if err != nil {
		ct.Log.Warn("error listando imágenes, degradando a lista vacía", zap.Error(err))
		return c.JSON([]media.Image{})
	}
	return c.JSON(images)
}
