package Gemini

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// Client calls the Gemini generateContent REST API. Used only for the preview
// flow: drafting templates and rewriting individual previews. The send path
// never goes through it.
type Client struct {
	APIKey     string
	BaseURL    string
	Model      string
	HTTPClient *http.Client
}

// EmailDraft is the structured response requested from the model.
type EmailDraft struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMimeType string          `json:"responseMimeType,omitempty"`
	ResponseSchema   json.RawMessage `json:"responseSchema,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// draftSchema constrains the model output to {subject, body}.
var draftSchema = json.RawMessage(`{
	"type": "OBJECT",
	"properties": {
		"subject": {"type": "STRING"},
		"body": {"type": "STRING"}
	},
	"required": ["subject", "body"]
}`)

func NewClient() *Client {
	return &Client{
		APIKey:     os.Getenv("GEMINI_API_KEY"),
		BaseURL:    "https://generativelanguage.googleapis.com/v1beta",
		Model:      "gemini-2.0-flash",
		HTTPClient: &http.Client{Timeout: 60 * time.Second},
	}
}

// GeneratePersonalizedEmail rewrites the template for one recipient.
func (c *Client) GeneratePersonalizedEmail(template string, recipient map[string]interface{}, campaignContext string) (*EmailDraft, error) {
	recipientData, err := json.Marshal(recipient)
	if err != nil {
		return nil, fmt.Errorf("error marshaling recipient data: %v", err)
	}

	prompt := fmt.Sprintf(`Actúa como un experto en marketing por correo electrónico.
Tengo la siguiente plantilla de correo:
"%s"

Y los siguientes datos del destinatario:
%s

Contexto adicional de la campaña:
"%s"

Tu tarea es reescribir el correo para que sea altamente personalizado, profesional y persuasivo.
Mantén el tono profesional pero cercano.
Devuelve el resultado en formato JSON con los campos "subject" (asunto) y "body" (cuerpo en HTML).`,
		template, recipientData, campaignContext)

	return c.generate(prompt)
}

// GenerateDraftTemplate creates a fresh template for a campaign goal.
func (c *Client) GenerateDraftTemplate(goal string) (*EmailDraft, error) {
	prompt := fmt.Sprintf(`Crea una plantilla de correo electrónico profesional para el siguiente objetivo: "%s".
Usa variables entre llaves dobles como {{nombre}}, {{empresa}}, {{cargo}} para las partes que deban ser personalizadas.
Incluye una estructura HTML limpia.
Devuelve un JSON con "subject" y "body" (HTML básico).`, goal)

	return c.generate(prompt)
}

func (c *Client) generate(prompt string) (*EmailDraft, error) {
	if c.APIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is not configured")
	}

	payload := generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: &generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   draftSchema,
		},
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("error marshaling JSON: %v", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.BaseURL, c.Model, c.APIKey)
	req, err := http.NewRequest("POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("error creating request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error calling Gemini API: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response: %v", err)
	}

	var result generateResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("error parsing response: %v", err)
	}
	if result.Error != nil {
		return nil, fmt.Errorf("Gemini API error: %s", result.Error.Message)
	}
	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("empty response from Gemini API")
	}

	var draft EmailDraft
	if err := json.Unmarshal([]byte(result.Candidates[0].Content.Parts[0].Text), &draft); err != nil {
		return nil, fmt.Errorf("error parsing generated draft: %v", err)
	}
	return &draft, nil
}
