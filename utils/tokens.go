package utils

import (
	"context"
	"os"
	"strconv"
	"time"

	"github.com/ruzzidanali/smashit/models"
	"github.com/ruzzidanali/smashit/storage"

	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

var bgContext = context.Background()

// AccessToken is the claims payload every authenticated owner request
// carries. BusinessID is the tenant boundary: admin handlers scope all
// queries by it and never trust a business id from the request body.
type AccessToken struct {
	UserID     uint   `json:"userId"`
	BusinessID uint   `json:"businessId"`
	Role       string `json:"role"`
}

type RefreshTokenInput struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// CreateTokenPair signs a 7-day access token and a 365-day refresh
// token. Refresh tokens are allow-listed in Redis so they can be
// revoked by deletion.
func CreateTokenPair(user models.User) (*jwt.TokenPair, error) {
	accessTokenSigner := jwt.NewSigner(jwt.HS256, os.Getenv("ACCESS_TOKEN_SECRET"), 7*24*time.Hour)
	refreshTokenSigner := jwt.NewSigner(jwt.HS256, os.Getenv("REFRESH_TOKEN_SECRET"), 365*24*time.Hour)

	accessClaims := AccessToken{
		UserID:     user.ID,
		BusinessID: user.BusinessID,
		Role:       user.Role,
	}

	refreshClaims := jwt.Claims{Subject: strconv.FormatUint(uint64(user.ID), 10)}

	accessToken, err := accessTokenSigner.Sign(accessClaims)
	if err != nil {
		return nil, err
	}

	refreshToken, err := refreshTokenSigner.Sign(refreshClaims)
	if err != nil {
		return nil, err
	}

	var tokenPair jwt.TokenPair
	tokenPair.AccessToken = accessToken
	tokenPair.RefreshToken = refreshToken

	if storage.Redis != nil {
		storage.Redis.Set(bgContext, string(refreshToken), "true", 365*24*time.Hour+5*time.Minute)
	}

	return &tokenPair, nil
}

// RefreshToken swaps a valid refresh token for a fresh pair. The old
// token is consumed so it cannot be replayed.
func RefreshToken(ctx iris.Context) {
	token := jwt.GetVerifiedToken(ctx)
	tokenStr := string(token.Token)

	validToken, tokenErr := storage.Redis.Get(bgContext, tokenStr).Result()
	if tokenErr != nil {
		CreateNotFound(ctx)
		return
	}

	if validToken != "true" {
		ctx.StatusCode(iris.StatusForbidden)
		return
	}

	storage.Redis.Del(bgContext, tokenStr)

	userID, parseErr := strconv.ParseUint(token.StandardClaims.Subject, 10, 32)
	if parseErr != nil {
		CreateInternalServerError(ctx)
		return
	}

	var user models.User
	if err := storage.DB.First(&user, uint(userID)).Error; err != nil {
		CreateNotFound(ctx)
		return
	}

	tokenPair, tokenPairErr := CreateTokenPair(user)
	if tokenPairErr != nil {
		CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{
		"accessToken":  string(tokenPair.AccessToken),
		"refreshToken": string(tokenPair.RefreshToken),
	})
}
