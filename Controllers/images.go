package Controllers

import (
	"bytes"
	"encoding/base64"
	"strconv"

	"github.com/disintegration/imaging"
	"github.com/gofiber/fiber/v2"
)

// Logos render at 200px and signature images at 300px, so anything much wider
// only inflates the stored data URL.
const defaultMaxImageWidth = 600

// UploadImage accepts a logo or signature image, downscales it when wider
// than maxWidth and returns it as a PNG data URL ready to embed in emails.
func UploadImage(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Falta la imagen"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No se pudo leer la imagen"})
	}
	defer file.Close()

	img, err := imaging.Decode(file, imaging.AutoOrientation(true))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "El archivo no es una imagen válida"})
	}

	maxWidth := defaultMaxImageWidth
	if raw := c.Query("maxWidth"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			maxWidth = parsed
		}
	}

	if img.Bounds().Dx() > maxWidth {
		img = imaging.Resize(img, maxWidth, 0, imaging.Lanczos)
	}

	var buffer bytes.Buffer
	if err := imaging.Encode(&buffer, img, imaging.PNG); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "No se pudo procesar la imagen"})
	}

	dataURL := "data:image/png;base64," + base64.StdEncoding.EncodeToString(buffer.Bytes())
	return c.JSON(fiber.Map{
		"dataUrl": dataURL,
		"width":   img.Bounds().Dx(),
		"height":  img.Bounds().Dy(),
	})
}
