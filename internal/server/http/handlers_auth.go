package httpserver

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofrs/uuid/v5"

	"github.com/and161185/studyhub/internal/convert"
	"github.com/and161185/studyhub/internal/model"
	"github.com/and161185/studyhub/internal/service"
)

func (h *handlers) signup(c fiber.Ctx) error {
	var in convert.SignupRequest
	if err := c.Bind().Body(&in); err != nil {
		return errInvalidBody
	}
	role := model.Role(in.Role)
	if role == "" {
		role = model.RoleUser
	}
	acc, tok, err := h.svc.Auth.Register(c.Context(), service.RegisterInput{
		Email:       in.Email,
		Username:    in.Username,
		Password:    in.Password,
		Role:        role,
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		Permissions: in.Permissions,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(convert.ToAccount(acc, tok))
}

func (h *handlers) signin(c fiber.Ctx) error {
	var in convert.SigninRequest
	if err := c.Bind().Body(&in); err != nil {
		return errInvalidBody
	}
	acc, tok, err := h.svc.Auth.Authenticate(c.Context(), in.Email, in.Password, c.IP())
	if err != nil {
		return err
	}
	return c.JSON(convert.ToAccount(acc, tok))
}

func (h *handlers) deleteSelf(c fiber.Ctx) error {
	if err := h.svc.Auth.DeleteSelf(c.Context(), currentAccount(c).ID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "User deleted successfully"})
}

// pathID parses the :id route parameter.
func pathID(c fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.FromString(c.Params("id"))
	if err != nil {
		return uuid.Nil, errInvalidID
	}
	return id, nil
}
