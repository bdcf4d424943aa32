package routes

import (
	"strings"

	"github.com/ruzzidanali/smashit/models"
	"github.com/ruzzidanali/smashit/storage"
	"github.com/ruzzidanali/smashit/utils"

	"github.com/kataras/iris/v12"
)

type BusinessProfileInput struct {
	Name     string `json:"name" validate:"omitempty,min=2"`
	Address  string `json:"address"`
	State    string `json:"state"`
	City     string `json:"city"`
	Postcode string `json:"postcode"`
	Phone    string `json:"phone"`
}

func GetAdminBusiness(ctx iris.Context) {
	var business models.Business
	if err := storage.DB.First(&business, utils.BusinessIDFromContext(ctx)).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "not_found", "Business not found", ctx)
		return
	}

	ctx.JSON(iris.Map{
		"id":        business.ID,
		"name":      business.Name,
		"slug":      business.Slug,
		"createdAt": business.CreatedAt,
	})
}

func GetBusinessProfile(ctx iris.Context) {
	var business models.Business
	if err := storage.DB.First(&business, utils.BusinessIDFromContext(ctx)).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "not_found", "Business not found", ctx)
		return
	}

	ctx.JSON(business)
}

// UpdateBusinessProfile is last-writer-wins on contact fields. The
// slug stays fixed for the life of the business so shared booking
// links never break.
func UpdateBusinessProfile(ctx iris.Context) {
	var input BusinessProfileInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var business models.Business
	if err := storage.DB.First(&business, utils.BusinessIDFromContext(ctx)).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "not_found", "Business not found", ctx)
		return
	}

	if input.Name != "" {
		business.Name = input.Name
	}
	business.Address = input.Address
	business.State = input.State
	business.City = input.City
	business.Postcode = input.Postcode
	business.Phone = input.Phone

	if err := storage.DB.Save(&business).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(business)
}

// ListPublicBusinesses backs the customer discovery page, optionally
// narrowed by state and city.
func ListPublicBusinesses(ctx iris.Context) {
	state := strings.TrimSpace(ctx.URLParam("state"))
	city := strings.TrimSpace(ctx.URLParam("city"))

	query := storage.DB.Model(&models.Business{}).Order("name ASC")
	if state != "" {
		query = query.Where("state = ?", state)
	}
	if city != "" {
		query = query.Where("city = ?", city)
	}

	var businesses []models.Business
	if err := query.Find(&businesses).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	out := make([]iris.Map, 0, len(businesses))
	for _, b := range businesses {
		out = append(out, iris.Map{
			"id":      b.ID,
			"name":    b.Name,
			"slug":    b.Slug,
			"state":   b.State,
			"city":    b.City,
			"address": b.Address,
			"phone":   b.Phone,
		})
	}

	ctx.JSON(out)
}

func ListStates(ctx iris.Context) {
	var states []string
	err := storage.DB.Model(&models.Business{}).
		Where("state <> ''").
		Distinct("state").
		Order("state ASC").
		Pluck("state", &states).Error
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(states)
}

func ListCities(ctx iris.Context) {
	state := strings.TrimSpace(ctx.URLParam("state"))
	if state == "" {
		utils.CreateError(iris.StatusBadRequest, "missing_state", "state is required", ctx)
		return
	}

	var cities []string
	err := storage.DB.Model(&models.Business{}).
		Where("state = ? AND city <> ''", state).
		Distinct("city").
		Order("city ASC").
		Pluck("city", &cities).Error
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(cities)
}
