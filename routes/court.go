package routes

import (
	"github.com/ruzzidanali/smashit/models"
	"github.com/ruzzidanali/smashit/storage"
	"github.com/ruzzidanali/smashit/utils"

	"github.com/kataras/iris/v12"
)

type CreateCourtInput struct {
	Name string `json:"name" validate:"required,min=2"`
}

type UpdateCourtInput struct {
	Name     *string `json:"name" validate:"omitempty,min=2"`
	IsActive *bool   `json:"isActive"`
}

func AdminListCourts(ctx iris.Context) {
	var courts []models.Court
	err := storage.DB.
		Where("business_id = ?", utils.BusinessIDFromContext(ctx)).
		Order("id ASC").
		Find(&courts).Error
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(courts)
}

func AdminCreateCourt(ctx iris.Context) {
	var input CreateCourtInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	court := models.Court{
		BusinessID: utils.BusinessIDFromContext(ctx),
		Name:       input.Name,
		IsActive:   true,
	}
	if err := storage.DB.Create(&court).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(court)
}

// AdminUpdateCourt patches name and/or active flag. The lookup is
// scoped by the caller's business, so a court id from another tenant
// reads as not found rather than forbidden.
func AdminUpdateCourt(ctx iris.Context) {
	courtID := ctx.Params().GetUintDefault("id", 0)
	if courtID == 0 {
		utils.CreateError(iris.StatusBadRequest, "invalid_id", "Invalid court id", ctx)
		return
	}

	var input UpdateCourtInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var court models.Court
	found := storage.DB.
		Where("id = ? AND business_id = ?", courtID, utils.BusinessIDFromContext(ctx)).
		Limit(1).
		Find(&court)
	if found.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if found.RowsAffected == 0 {
		utils.CreateError(iris.StatusNotFound, "not_found", "Court not found", ctx)
		return
	}

	if input.Name != nil {
		court.Name = *input.Name
	}
	if input.IsActive != nil {
		court.IsActive = *input.IsActive
	}

	if err := storage.DB.Save(&court).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(court)
}

// PublicListCourts returns the active courts a customer can pick from.
func PublicListCourts(ctx iris.Context) {
	business := getBusinessBySlug(ctx)
	if business == nil {
		return
	}

	var courts []models.Court
	err := storage.DB.
		Where("business_id = ? AND is_active = ?", business.ID, true).
		Order("id ASC").
		Find(&courts).Error
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{
		"business": iris.Map{
			"id":   business.ID,
			"name": business.Name,
			"slug": business.Slug,
		},
		"courts": courts,
	})
}

// getBusinessBySlug resolves the {slug} path parameter and writes the
// 404 itself when the business does not exist.
func getBusinessBySlug(ctx iris.Context) *models.Business {
	slug := ctx.Params().Get("slug")

	var business models.Business
	found := storage.DB.Where("slug = ?", slug).Limit(1).Find(&business)
	if found.Error != nil {
		utils.CreateInternalServerError(ctx)
		return nil
	}
	if found.RowsAffected == 0 {
		utils.CreateError(iris.StatusNotFound, "not_found", "Business not found", ctx)
		return nil
	}

	return &business
}
