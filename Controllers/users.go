package Controllers

import (
	"Remitente/Models"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

// UserController handles account management endpoints.
type UserController struct {
	Store Models.AccountStore
}

func NewUserController(store Models.AccountStore) *UserController {
	return &UserController{Store: store}
}

type RegisterUserInput struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"omitempty,oneof=admin user"`
}

type UpdateUserInput struct {
	Password       string             `json:"password"`
	SMTPConfig     *Models.SMTPConfig `json:"smtpConfig"`
	Signature      *string            `json:"signature"`
	SignatureImage *string            `json:"signatureImage"`
	Logo           *string            `json:"logo"`
}

// FetchUsers lists every account without password hashes. Admin only.
func (u *UserController) FetchUsers(c *fiber.Ctx) error {
	users, err := u.Store.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "No se pudieron obtener los usuarios"})
	}

	safeUsers := make([]Models.PublicUser, 0, len(users))
	for i := range users {
		safeUsers = append(safeUsers, users[i].Public())
	}
	return c.JSON(safeUsers)
}

// RegisterUser creates an account. Admin only.
func (u *UserController) RegisterUser(c *fiber.Ctx) error {
	var input RegisterUserInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": validationMessage(err)})
	}

	passwordByte, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "No se pudo crear el usuario"})
	}

	role := input.Role
	if role == "" {
		role = Models.RoleUser
	}

	user := Models.User{
		Username: input.Username,
		Password: passwordByte,
		Role:     role,
	}
	user.SetSMTPSettings(Models.SMTPConfig{Port: "587"})

	if err := u.Store.Create(&user); err != nil {
		if errors.Is(err, Models.ErrDuplicateUser) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "El usuario ya existe"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "No se pudo crear el usuario"})
	}

	return c.Status(fiber.StatusCreated).JSON(user.Public())
}

// UpdateUser applies a partial update. Any account may update itself; admins
// may update anyone.
func (u *UserController) UpdateUser(c *fiber.Ctx) error {
	requester, _ := c.Locals("user").(Models.User)

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID de usuario inválido"})
	}

	if requester.Role != Models.RoleAdmin && requester.ID != uint(id) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "No tienes permiso para acceder a este recurso"})
	}

	user, err := u.Store.GetByID(uint(id))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Usuario no encontrado"})
	}

	var input UpdateUserInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if input.SMTPConfig != nil {
		user.SetSMTPSettings(*input.SMTPConfig)
	}
	if input.Signature != nil {
		user.Signature = *input.Signature
	}
	if input.SignatureImage != nil {
		user.SignatureImage = *input.SignatureImage
	}
	if input.Logo != nil {
		user.Logo = *input.Logo
	}
	if input.Password != "" {
		passwordByte, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "No se pudo actualizar el usuario"})
		}
		user.Password = passwordByte
	}

	if err := u.Store.Update(user); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "No se pudo actualizar el usuario"})
	}

	return c.JSON(user.Public())
}

// DeleteUser removes an account. Admin only, and never the admin's own.
func (u *UserController) DeleteUser(c *fiber.Ctx) error {
	requester, _ := c.Locals("user").(Models.User)

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID de usuario inválido"})
	}

	if uint(id) == requester.ID {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No puedes eliminar tu propio usuario"})
	}

	if err := u.Store.Delete(uint(id)); err != nil {
		if errors.Is(err, Models.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Usuario no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "No se pudo eliminar el usuario"})
	}

	return c.JSON(fiber.Map{"message": "Usuario eliminado"})
}
