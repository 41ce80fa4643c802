package Models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// SMTPConfig holds the outbound mail settings owned by a single user.
// Port stays a string because the frontend sends it that way and the
// implicit-TLS rule compares against "465" literally.
type SMTPConfig struct {
	Host string `json:"host"`
	Port string `json:"port"`
	User string `json:"user"`
	Pass string `json:"pass"`
	From string `json:"from"`
}

// IsComplete reports whether the config can be used for sending.
// Missing host or user is a hard precondition failure.
func (c SMTPConfig) IsComplete() bool {
	return c.Host != "" && c.User != ""
}

type User struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	Username string `json:"username" gorm:"uniqueIndex;size:64"`
	Password []byte `json:"-"`
	Role     string `json:"role" gorm:"size:16;default:user"`

	// Nested SMTP settings, stored the way the row store keeps them.
	SMTPConfigJSON datatypes.JSON `json:"-" gorm:"column:smtp_config"`

	// Flat columns kept for rows written by the old schema. SMTPSettings
	// reads the nested form first and falls back to these.
	SMTPHost string `json:"-" gorm:"column:smtp_host"`
	SMTPPort string `json:"-" gorm:"column:smtp_port"`
	SMTPUser string `json:"-" gorm:"column:smtp_user"`
	SMTPPass string `json:"-" gorm:"column:smtp_pass"`
	SMTPFrom string `json:"-" gorm:"column:smtp_from"`

	Signature      string `json:"signature"`
	SignatureImage string `json:"signatureImage"`
	Logo           string `json:"logo"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// SMTPSettings normalizes the two row shapes into the canonical config.
func (u *User) SMTPSettings() SMTPConfig {
	if len(u.SMTPConfigJSON) > 0 {
		var cfg SMTPConfig
		if err := json.Unmarshal(u.SMTPConfigJSON, &cfg); err == nil && cfg != (SMTPConfig{}) {
			return cfg
		}
	}
	return SMTPConfig{
		Host: u.SMTPHost,
		Port: u.SMTPPort,
		User: u.SMTPUser,
		Pass: u.SMTPPass,
		From: u.SMTPFrom,
	}
}

// SetSMTPSettings writes both representations so old readers keep working.
func (u *User) SetSMTPSettings(cfg SMTPConfig) {
	raw, err := json.Marshal(cfg)
	if err == nil {
		u.SMTPConfigJSON = datatypes.JSON(raw)
	}
	u.SMTPHost = cfg.Host
	u.SMTPPort = cfg.Port
	u.SMTPUser = cfg.User
	u.SMTPPass = cfg.Pass
	u.SMTPFrom = cfg.From
}

// PublicUser is the API representation, never carrying the password hash.
type PublicUser struct {
	ID             uint       `json:"id"`
	Username       string     `json:"username"`
	Role           string     `json:"role"`
	SMTPConfig     SMTPConfig `json:"smtpConfig"`
	Signature      string     `json:"signature"`
	SignatureImage string     `json:"signatureImage,omitempty"`
	Logo           string     `json:"logo,omitempty"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:             u.ID,
		Username:       u.Username,
		Role:           u.Role,
		SMTPConfig:     u.SMTPSettings(),
		Signature:      u.Signature,
		SignatureImage: u.SignatureImage,
		Logo:           u.Logo,
	}
}

// CampaignLog records one finished campaign run for the history view.
type CampaignLog struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	UserID    uint           `json:"userId" gorm:"index"`
	Subject   string         `json:"subject"`
	Total     int            `json:"total"`
	Sent      int            `json:"sent"`
	Failed    int            `json:"failed"`
	Results   datatypes.JSON `json:"results"`
	CreatedAt time.Time      `json:"createdAt"`
}
