package controllers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"hotspotbill-backend/db"
	"hotspotbill-backend/http/requests"
	"hotspotbill-backend/logger"
	"hotspotbill-backend/models"
)

func Login(c *fiber.Ctx) error {
	var req requests.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Logger.WithError(err).Error("Failed to parse login request")
		return fiber.NewError(fiber.StatusBadRequest, "Invalid input")
	}
	if err := req.Validate(); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid input")
	}

	var user models.User
	if err := db.DB.Where("username = ?", req.Username).First(&user).Error; err != nil {
		logger.Logger.WithError(err).Error("User not found")
		return fiber.NewError(fiber.StatusUnauthorized, "Invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		logger.Logger.Error("Invalid password")
		return fiber.NewError(fiber.StatusUnauthorized, "Invalid credentials")
	}

	token := jwt.New(jwt.SigningMethodHS256)
	claims := token.Claims.(jwt.MapClaims)
	claims["id"] = user.ID
	claims["username"] = user.Username
	claims["exp"] = time.Now().Add(time.Hour * 2).Unix()

	tokenString, err := token.SignedString([]byte(jwtSecret))
	if err != nil {
		logger.Logger.WithError(err).Error("Failed to generate token")
		return fiber.NewError(fiber.StatusInternalServerError, "Could not login")
	}

	return c.JSON(fiber.Map{
		"token": tokenString,
	})
}

func Register(c *fiber.Ctx) error {
	var req requests.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Logger.WithError(err).Error("Failed to parse register request")
		return fiber.NewError(fiber.StatusBadRequest, "Invalid input")
	}
	if err := req.Validate(); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Validation failed")
	}

	var existing models.User
	err := db.DB.Where("username = ?", req.Username).First(&existing).Error
	if err == nil {
		return fiber.NewError(fiber.StatusConflict, "Username already taken")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Logger.WithError(err).Error("Failed to check existing user")
		return fiber.NewError(fiber.StatusInternalServerError, "Could not register")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Logger.WithError(err).Error("Failed to hash password")
		return fiber.NewError(fiber.StatusInternalServerError, "Could not register")
	}

	user := models.User{
		Username: req.Username,
		Password: string(hash),
		FullName: req.FullName,
		Email:    req.Email,
	}
	if err := db.DB.Create(&user).Error; err != nil {
		logger.Logger.WithError(err).Error("Failed to create user")
		return fiber.NewError(fiber.StatusInternalServerError, "Could not register")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":       user.ID,
		"username": user.Username,
	})
}
