package Controllers

import (
	"Remitente/Campaign"
	"Remitente/Gemini"

	"github.com/gofiber/fiber/v2"
)

// AIController backs the preview-only personalization features. Nothing here
// touches the send path; a generated draft only reaches recipients after the
// user submits it through /api/send-emails.
type AIController struct {
	Client *Gemini.Client
}

func NewAIController(client *Gemini.Client) *AIController {
	return &AIController{Client: client}
}

type PersonalizeInput struct {
	Template  Campaign.Template  `json:"template"`
	Recipient Campaign.Recipient `json:"recipient" validate:"required"`
	Context   string             `json:"context"`
}

type DraftInput struct {
	Goal string `json:"goal" validate:"required"`
}

// Personalize rewrites the template for a single recipient preview.
func (a *AIController) Personalize(c *fiber.Ctx) error {
	var input PersonalizeInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": validationMessage(err)})
	}

	template := input.Template.Subject + "\n\n" + input.Template.Body
	draft, err := a.Client.GeneratePersonalizedEmail(template, input.Recipient, input.Context)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "No se pudo generar el contenido"})
	}
	return c.JSON(draft)
}

// Draft generates a fresh template from a campaign goal.
func (a *AIController) Draft(c *fiber.Ctx) error {
	var input DraftInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": validationMessage(err)})
	}

	draft, err := a.Client.GenerateDraftTemplate(input.Goal)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "No se pudo generar el contenido"})
	}
	return c.JSON(draft)
}
