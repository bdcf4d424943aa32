package routes

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ruzzidanali/smashit/models"
	"github.com/ruzzidanali/smashit/storage"
	"github.com/ruzzidanali/smashit/utils"

	"github.com/kataras/iris/v12"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// timeNow is swapped out in tests so past-date rules can be asserted
// against a fixed clock. "Today" and "now" are the server's local time
// zone; see DESIGN.md for the multi-region caveat.
var timeNow = time.Now

var errSlotTaken = errors.New("slot already booked")

type CreateBookingInput struct {
	CourtID      uint   `json:"courtId" validate:"required"`
	Date         string `json:"date" validate:"required"`
	StartMinutes int    `json:"startMinutes" validate:"min=0,max=1440"`
	EndMinutes   int    `json:"endMinutes" validate:"min=0,max=1440"`
	CustomerName string `json:"customerName" validate:"required"`
	Phone        string `json:"phone" validate:"required,min=6"`
}

type PaymentStatusInput struct {
	Status string `json:"status" validate:"required"`
}

func todayYYYYMMDD() string {
	return timeNow().Format("2006-01-02")
}

func nowMinutesLocal() int {
	now := timeNow()
	return now.Hour()*60 + now.Minute()
}

// GetAvailability returns the confirmed bookings for one date so the
// client can overlay them onto its slot grid. The server never
// computes free slots itself; this is a pure projection of taken
// intervals.
func GetAvailability(ctx iris.Context) {
	business := getBusinessBySlug(ctx)
	if business == nil {
		return
	}

	date := ctx.URLParam("date")
	if date == "" {
		utils.CreateError(iris.StatusBadRequest, "missing_date", "date is required (YYYY-MM-DD)", ctx)
		return
	}

	var bookings []models.Booking
	err := storage.DB.
		Select("id", "court_id", "start_minutes", "end_minutes").
		Where("business_id = ? AND date = ? AND status = ?", business.ID, date, models.BookingConfirmed).
		Order("court_id ASC, start_minutes ASC").
		Find(&bookings).Error
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	out := make([]iris.Map, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, iris.Map{
			"id":           b.ID,
			"courtId":      b.CourtID,
			"startMinutes": b.StartMinutes,
			"endMinutes":   b.EndMinutes,
		})
	}

	ctx.JSON(iris.Map{"date": date, "bookings": out})
}

// CreateBooking admits a reservation only when every check passes, in
// this order: business (404), payload shape (400), past date/time
// (400), court ownership and active flag (404), overlap (409). The
// overlap check and the insert run inside one transaction, and the
// bookings table carries a Postgres exclusion constraint as the
// backstop for two requests racing past the check together.
func CreateBooking(ctx iris.Context) {
	business := getBusinessBySlug(ctx)
	if business == nil {
		return
	}

	var input CreateBookingInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	// The validator sees the raw string; the digit minimum has to hold
	// on the normalized form that gets stored and matched later.
	if !utils.ValidPhone(input.Phone) {
		utils.CreateError(iris.StatusBadRequest, "invalid_phone", "Phone must contain at least 6 digits", ctx)
		return
	}

	if input.EndMinutes <= input.StartMinutes {
		utils.CreateError(iris.StatusBadRequest, "invalid_time_range", "Invalid time range", ctx)
		return
	}

	if _, err := time.Parse("2006-01-02", input.Date); err != nil {
		utils.CreateError(iris.StatusBadRequest, "invalid_date", "Invalid date format (YYYY-MM-DD)", ctx)
		return
	}

	today := todayYYYYMMDD()
	if input.Date < today {
		utils.CreateError(iris.StatusBadRequest, "past_date", "Cannot book a past date", ctx)
		return
	}
	if input.Date == today && input.StartMinutes <= nowMinutesLocal() {
		utils.CreateError(iris.StatusBadRequest, "past_time", "Cannot book a past time slot", ctx)
		return
	}

	var court models.Court
	courtFound := storage.DB.
		Where("id = ? AND business_id = ? AND is_active = ?", input.CourtID, business.ID, true).
		Limit(1).
		Find(&court)
	if courtFound.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if courtFound.RowsAffected == 0 {
		utils.CreateError(iris.StatusNotFound, "not_found", "Court not found", ctx)
		return
	}

	booking := models.Booking{
		BusinessID:    business.ID,
		CourtID:       court.ID,
		Date:          input.Date,
		StartMinutes:  input.StartMinutes,
		EndMinutes:    input.EndMinutes,
		CustomerName:  input.CustomerName,
		Phone:         utils.NormalizePhone(input.Phone),
		Status:        models.BookingConfirmed,
		PaymentStatus: models.PaymentPending,
	}

	txErr := storage.DB.Transaction(func(tx *gorm.DB) error {
		var conflicts int64
		err := tx.Model(&models.Booking{}).
			Where("business_id = ? AND court_id = ? AND date = ? AND status = ?",
				business.ID, court.ID, input.Date, models.BookingConfirmed).
			Where("start_minutes < ? AND end_minutes > ?", input.EndMinutes, input.StartMinutes).
			Count(&conflicts).Error
		if err != nil {
			return err
		}
		if conflicts > 0 {
			return errSlotTaken
		}
		return tx.Create(&booking).Error
	})

	if txErr != nil {
		if isOverlapError(txErr) {
			utils.CreateConflict(ctx, "Time slot already booked")
			return
		}
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, business.ID, "booking.create", "booking", booking.ID, nil, booking)

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(booking)
}

// isOverlapError matches both the in-transaction check and the
// exclusion constraint firing on a raced insert.
func isOverlapError(err error) bool {
	return errors.Is(err, errSlotTaken) ||
		strings.Contains(err.Error(), "bookings_no_overlap")
}

func AdminListBookings(ctx iris.Context) {
	date := ctx.URLParam("date")
	if date == "" {
		utils.CreateError(iris.StatusBadRequest, "missing_date", "date required (YYYY-MM-DD)", ctx)
		return
	}

	var bookings []models.Booking
	err := storage.DB.
		Where("business_id = ? AND date = ? AND status = ?",
			utils.BusinessIDFromContext(ctx), date, models.BookingConfirmed).
		Preload("Court").
		Order("start_minutes ASC").
		Find(&bookings).Error
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(bookings)
}

// AdminCancelBooking is the owner-side cancel. Only CONFIRMED rows
// match, so cancelling twice reports not found the second time.
func AdminCancelBooking(ctx iris.Context) {
	bookingID := ctx.Params().GetUintDefault("id", 0)
	if bookingID == 0 {
		utils.CreateError(iris.StatusBadRequest, "invalid_id", "Invalid booking id", ctx)
		return
	}

	var booking models.Booking
	found := storage.DB.
		Where("id = ? AND business_id = ? AND status = ?",
			bookingID, utils.BusinessIDFromContext(ctx), models.BookingConfirmed).
		Limit(1).
		Find(&booking)
	if found.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if found.RowsAffected == 0 {
		utils.CreateError(iris.StatusNotFound, "not_found", "Booking not found", ctx)
		return
	}

	before := booking
	booking.Status = models.BookingCancelled
	if err := storage.DB.Save(&booking).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, booking.BusinessID, "booking.cancel", "booking", booking.ID, before, booking)

	ctx.JSON(iris.Map{"success": true})
}

// AdminUpdatePaymentStatus lets the owner mark a proof as verified
// (or walk it back to pending/submitted).
func AdminUpdatePaymentStatus(ctx iris.Context) {
	bookingID := ctx.Params().GetUintDefault("id", 0)
	if bookingID == 0 {
		utils.CreateError(iris.StatusBadRequest, "invalid_id", "Invalid booking id", ctx)
		return
	}

	var input PaymentStatusInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	valid := []string{models.PaymentPending, models.PaymentSubmitted, models.PaymentVerified}
	if !slices.Contains(valid, input.Status) {
		utils.CreateError(iris.StatusBadRequest, "invalid_status", fmt.Sprintf("status must be one of %v", valid), ctx)
		return
	}

	var booking models.Booking
	found := storage.DB.
		Where("id = ? AND business_id = ?", bookingID, utils.BusinessIDFromContext(ctx)).
		Limit(1).
		Find(&booking)
	if found.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if found.RowsAffected == 0 {
		utils.CreateError(iris.StatusNotFound, "not_found", "Booking not found", ctx)
		return
	}

	before := booking
	booking.PaymentStatus = input.Status
	if err := storage.DB.Save(&booking).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, booking.BusinessID, "booking.payment_status", "booking", booking.ID, before, booking)

	ctx.JSON(booking)
}

// ListMyBookings is the customer lookup: phone matches exactly, name
// is a contains-match, cancelled rows are hidden, newest first.
func ListMyBookings(ctx iris.Context) {
	business := getBusinessBySlug(ctx)
	if business == nil {
		return
	}

	phone := strings.TrimSpace(ctx.URLParam("phone"))
	name := strings.TrimSpace(ctx.URLParam("name"))
	if phone == "" && name == "" {
		utils.CreateError(iris.StatusBadRequest, "missing_filter", "phone or name is required", ctx)
		return
	}

	query := storage.DB.
		Where("business_id = ? AND status <> ?", business.ID, models.BookingCancelled)
	if phone != "" {
		query = query.Where("phone = ?", utils.NormalizePhone(phone))
	}
	if name != "" {
		query = query.Where("customer_name LIKE ?", "%"+name+"%")
	}

	var bookings []models.Booking
	err := query.
		Preload("Court").
		Order("date DESC, start_minutes DESC").
		Find(&bookings).Error
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	out := make([]iris.Map, 0, len(bookings))
	for _, b := range bookings {
		entry := iris.Map{
			"id":            b.ID,
			"courtId":       b.CourtID,
			"date":          b.Date,
			"startMinutes":  b.StartMinutes,
			"endMinutes":    b.EndMinutes,
			"customerName":  b.CustomerName,
			"phone":         b.Phone,
			"status":        b.Status,
			"paymentProof":  b.PaymentProof,
			"paymentStatus": b.PaymentStatus,
		}
		if b.Court != nil {
			entry["court"] = iris.Map{"id": b.Court.ID, "name": b.Court.Name}
		}
		out = append(out, entry)
	}

	ctx.JSON(iris.Map{
		"business": iris.Map{"name": business.Name, "slug": business.Slug},
		"bookings": out,
	})
}

// CancelMyBooking is the customer-side cancel. The phone number acts
// as a weak shared secret, not real authentication; anyone who knows
// the booking id and phone can cancel. Documented trade-off for an
// account-less customer flow.
func CancelMyBooking(ctx iris.Context) {
	business := getBusinessBySlug(ctx)
	if business == nil {
		return
	}

	phone := strings.TrimSpace(ctx.URLParam("phone"))
	if phone == "" {
		utils.CreateError(iris.StatusBadRequest, "missing_phone", "phone is required", ctx)
		return
	}

	bookingID := ctx.Params().GetUintDefault("id", 0)
	if bookingID == 0 {
		utils.CreateError(iris.StatusBadRequest, "invalid_id", "Invalid booking id", ctx)
		return
	}

	var booking models.Booking
	found := storage.DB.
		Where("id = ? AND business_id = ? AND phone = ? AND status = ?",
			bookingID, business.ID, utils.NormalizePhone(phone), models.BookingConfirmed).
		Limit(1).
		Find(&booking)
	if found.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if found.RowsAffected == 0 {
		utils.CreateError(iris.StatusNotFound, "not_found", "Booking not found", ctx)
		return
	}

	before := booking
	booking.Status = models.BookingCancelled
	if err := storage.DB.Save(&booking).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, booking.BusinessID, "booking.cancel_by_customer", "booking", booking.ID, before, booking)

	ctx.JSON(iris.Map{"ok": true})
}

// UploadPaymentProof accepts a multipart image from the customer and
// attaches it to their booking. The owner reviews it and flips the
// payment status to VERIFIED.
func UploadPaymentProof(ctx iris.Context) {
	business := getBusinessBySlug(ctx)
	if business == nil {
		return
	}

	phone := strings.TrimSpace(ctx.FormValue("phone"))
	if phone == "" {
		utils.CreateError(iris.StatusBadRequest, "missing_phone", "phone is required", ctx)
		return
	}

	bookingID := ctx.Params().GetUintDefault("id", 0)
	if bookingID == 0 {
		utils.CreateError(iris.StatusBadRequest, "invalid_id", "Invalid booking id", ctx)
		return
	}

	var booking models.Booking
	found := storage.DB.
		Where("id = ? AND business_id = ? AND phone = ? AND status = ?",
			bookingID, business.ID, utils.NormalizePhone(phone), models.BookingConfirmed).
		Limit(1).
		Find(&booking)
	if found.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if found.RowsAffected == 0 {
		utils.CreateError(iris.StatusNotFound, "not_found", "Booking not found", ctx)
		return
	}

	file, header, err := ctx.FormFile("file")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "missing_file", "payment proof image is required", ctx)
		return
	}
	defer file.Close()

	proofPath, saveErr := storage.SaveUpload(file, header.Filename)
	if saveErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	before := booking
	booking.PaymentProof = proofPath
	booking.PaymentStatus = models.PaymentSubmitted
	if err := storage.DB.Save(&booking).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, booking.BusinessID, "booking.payment_proof", "booking", booking.ID, before, booking)

	ctx.JSON(iris.Map{
		"paymentProof":  booking.PaymentProof,
		"paymentStatus": booking.PaymentStatus,
	})
}
