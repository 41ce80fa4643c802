package Controllers

import (
	"Remitente/Campaign"
	"Remitente/Models"
	"Remitente/email"
	"encoding/json"
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
)

// SendController handles campaign dispatch, the SMTP test endpoint and the
// campaign history.
type SendController struct {
	Store Models.AccountStore
	// Dispatch builds the per-campaign dispatcher. Tests swap it out to
	// avoid real SMTP traffic.
	Dispatch func(Models.SMTPConfig) Campaign.Dispatcher
}

func NewSendController(store Models.AccountStore) *SendController {
	return &SendController{
		Store: store,
		Dispatch: func(cfg Models.SMTPConfig) Campaign.Dispatcher {
			return email.NewDispatcher(cfg)
		},
	}
}

type SendEmailsInput struct {
	Recipients []Campaign.Recipient `json:"recipients"`
	Template   Campaign.Template    `json:"template"`
}

// SendEmails runs one campaign over the submitted recipient list. SMTP
// settings, signature and logo always come from the stored account of the
// authenticated user, never from the request body.
func (s *SendController) SendEmails(c *fiber.Ctx) error {
	requester, ok := c.Locals("user").(Models.User)
	if !ok {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "No autenticado"})
	}

	// Re-read the account so the freshest SMTP config and branding are used
	user, err := s.Store.GetByID(requester.ID)
	if err != nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Usuario no encontrado"})
	}

	var input SendEmailsInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	profile := Campaign.Profile{
		SMTP:           user.SMTPSettings(),
		Signature:      user.Signature,
		SignatureImage: user.SignatureImage,
		Logo:           user.Logo,
	}

	runner := Campaign.Runner{Dispatcher: s.Dispatch(profile.SMTP)}
	results, err := runner.Run(c.UserContext(), input.Template, input.Recipients, profile)
	if err != nil {
		var configErr *Campaign.ConfigError
		if errors.As(err, &configErr) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": configErr.Reason})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	s.saveLog(user.ID, input.Template.Subject, results)

	return c.JSON(fiber.Map{"results": results})
}

func (s *SendController) saveLog(userID uint, subject string, results []Campaign.SendResult) {
	sent := 0
	for _, r := range results {
		if r.Status == Campaign.StatusSent {
			sent++
		}
	}

	raw, err := json.Marshal(results)
	if err != nil {
		log.Println("Failed to encode campaign results:", err)
		return
	}

	entry := Models.CampaignLog{
		UserID:  userID,
		Subject: subject,
		Total:   len(results),
		Sent:    sent,
		Failed:  len(results) - sent,
		Results: raw,
	}
	if err := s.Store.SaveCampaignLog(&entry); err != nil {
		log.Println("Failed to save campaign log:", err)
	}
}

type PreviewInput struct {
	Template  Campaign.Template  `json:"template"`
	Recipient Campaign.Recipient `json:"recipient"`
}

// Preview merges and composes one recipient's email exactly the way the send
// path does, so the preview matches the outbound message byte for byte.
func (s *SendController) Preview(c *fiber.Ctx) error {
	requester, ok := c.Locals("user").(Models.User)
	if !ok {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "No autenticado"})
	}

	user, err := s.Store.GetByID(requester.ID)
	if err != nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Usuario no encontrado"})
	}

	var input PreviewInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	subject, body := Campaign.MergeTemplate(input.Template, input.Recipient)
	body = Campaign.Compose(body, user.Logo, user.Signature, user.SignatureImage)

	return c.JSON(fiber.Map{"subject": subject, "body": body})
}

// TestSMTP verifies connectivity and credentials without sending a message.
// This is the only endpoint that honors client-supplied SMTP settings.
func (s *SendController) TestSMTP(c *fiber.Ctx) error {
	var config Models.SMTPConfig
	if err := c.BodyParser(&config); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if !config.IsComplete() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Configuración SMTP incompleta. Por favor configúrala en tu perfil."})
	}

	if err := email.VerifyConnection(config); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "Conexión SMTP exitosa"})
}

// ListCampaigns returns the caller's campaign history, newest first.
func (s *SendController) ListCampaigns(c *fiber.Ctx) error {
	requester, ok := c.Locals("user").(Models.User)
	if !ok {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "No autenticado"})
	}

	logs, err := s.Store.ListCampaignLogs(requester.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "No se pudo obtener el historial"})
	}
	return c.JSON(logs)
}
