package routes

import (
	"strings"

	"github.com/ruzzidanali/smashit/models"
	"github.com/ruzzidanali/smashit/storage"
	"github.com/ruzzidanali/smashit/utils"

	"github.com/kataras/iris/v12"
	"golang.org/x/crypto/bcrypt"
)

type RegisterInput struct {
	BusinessName string `json:"businessName" validate:"required,min=2"`
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=6"`
	Address      string `json:"address"`
	State        string `json:"state"`
	City         string `json:"city"`
	Postcode     string `json:"postcode"`
	Phone        string `json:"phone"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Register creates a business plus its owner account in one step. The
// URL slug is derived from the business name and de-duplicated with an
// incrementing suffix.
func Register(ctx iris.Context) {
	var input RegisterInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	email := strings.ToLower(input.Email)

	var existing models.User
	emailTaken := storage.DB.Where("email = ?", email).Limit(1).Find(&existing)
	if emailTaken.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if emailTaken.RowsAffected > 0 {
		utils.CreateError(iris.StatusConflict, "email_taken", "Email already registered", ctx)
		return
	}

	slug, slugErr := utils.UniqueBusinessSlug(storage.DB, input.BusinessName)
	if slugErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	hashedPassword, hashErr := hashAndSaltPassword(input.Password)
	if hashErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	business := models.Business{
		Name:     input.BusinessName,
		Slug:     slug,
		Address:  input.Address,
		State:    input.State,
		City:     input.City,
		Postcode: input.Postcode,
		Phone:    input.Phone,
	}
	if err := storage.DB.Create(&business).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	user := models.User{
		Email:      email,
		Password:   hashedPassword,
		Role:       models.RoleOwner,
		BusinessID: business.ID,
	}
	if err := storage.DB.Create(&user).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	returnAuth(user, business, ctx)
}

func Login(ctx iris.Context) {
	var input LoginInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	errorMsg := "Invalid email or password"

	var user models.User
	userQuery := storage.DB.Where("email = ?", strings.ToLower(input.Email)).Limit(1).Find(&user)
	if userQuery.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if userQuery.RowsAffected == 0 {
		utils.CreateError(iris.StatusUnauthorized, "invalid_credentials", errorMsg, ctx)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		utils.CreateError(iris.StatusUnauthorized, "invalid_credentials", errorMsg, ctx)
		return
	}

	var business models.Business
	if err := storage.DB.First(&business, user.BusinessID).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	returnAuth(user, business, ctx)
}

// Me lets the frontend validate a stored token and reload its business
// context after a refresh.
func Me(ctx iris.Context) {
	var user models.User
	if err := storage.DB.First(&user, utils.UserIDFromContext(ctx)).Error; err != nil {
		utils.CreateError(iris.StatusUnauthorized, "not_authorized", "Not authorized", ctx)
		return
	}

	var business models.Business
	if err := storage.DB.First(&business, utils.BusinessIDFromContext(ctx)).Error; err != nil {
		utils.CreateError(iris.StatusUnauthorized, "not_authorized", "Not authorized", ctx)
		return
	}

	ctx.JSON(iris.Map{
		"user": iris.Map{
			"id":         user.ID,
			"email":      user.Email,
			"role":       user.Role,
			"businessId": user.BusinessID,
		},
		"business": iris.Map{
			"id":        business.ID,
			"name":      business.Name,
			"slug":      business.Slug,
			"createdAt": business.CreatedAt,
		},
	})
}

func returnAuth(user models.User, business models.Business, ctx iris.Context) {
	tokenPair, tokenErr := utils.CreateTokenPair(user)
	if tokenErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{
		"token":        string(tokenPair.AccessToken),
		"refreshToken": string(tokenPair.RefreshToken),
		"business": iris.Map{
			"id":   business.ID,
			"name": business.Name,
			"slug": business.Slug,
		},
		"user": iris.Map{
			"id":    user.ID,
			"email": user.Email,
			"role":  user.Role,
		},
	})
}

func hashAndSaltPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}
