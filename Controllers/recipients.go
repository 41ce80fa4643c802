package Controllers

import (
	"Remitente/Campaign"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

// UploadRecipients parses an uploaded XLSX file into recipient records. The
// first row of the first sheet provides the column names; every following
// non-empty row becomes one recipient.
func UploadRecipients(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Falta el archivo de destinatarios"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No se pudo leer el archivo"})
	}
	defer file.Close()

	workbook, err := excelize.OpenReader(file)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "El archivo no es una hoja de cálculo válida"})
	}
	defer workbook.Close()

	sheets := workbook.GetSheetList()
	if len(sheets) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "La hoja de cálculo está vacía"})
	}

	rows, err := workbook.GetRows(sheets[0])
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No se pudo leer la hoja de cálculo"})
	}
	if len(rows) < 2 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "La hoja de cálculo no tiene filas de datos"})
	}

	headers := rows[0]
	recipients := make([]Campaign.Recipient, 0, len(rows)-1)
	for _, row := range rows[1:] {
		recipient := make(Campaign.Recipient, len(headers))
		empty := true
		for columnIndex, name := range headers {
			if name == "" || columnIndex >= len(row) {
				continue
			}
			value := strings.TrimSpace(row[columnIndex])
			if value == "" {
				continue
			}
			recipient[name] = value
			empty = false
		}
		if !empty {
			recipients = append(recipients, recipient)
		}
	}

	return c.JSON(fiber.Map{
		"recipients": recipients,
		"count":      len(recipients),
	})
}
