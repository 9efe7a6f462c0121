package controllers

import (
	"net/http"

	"github.com/go-redis/redis/v7"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"fbar-server/models"
)

// AccountController returns the signed-in operator's own record, used by the
// review console header.
type AccountController struct {
	db    *mongo.Database
	cache *redis.Client
	log   zerolog.Logger
}

// NewAccountController takes initialized data sources and returns a new
// account controller.
func NewAccountController(db *mongo.Database, cache *redis.Client, log zerolog.Logger) *AccountController {
	return &AccountController{db: db, cache: cache, log: log}
}

// AccessAccount handles GET /api/admin/me and returns the user object behind
// the presented access token, with the password hash stripped.
func (c *AccountController) AccessAccount(w http.ResponseWriter, r *http.Request) {
	accessDetails, err := ExtractTokenMetadata(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Invalid session token.")
		return
	}
	userID, err := ConfirmCachedAuth(c.cache, accessDetails)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Session expired. Please sign in again.")
		return
	}

	dbUser := models.User{}
	err = c.db.Collection(usersCollection).
		FindOne(r.Context(), bson.M{"_id": userID}).Decode(&dbUser)
	if err != nil {
		// The token was authorized but the user record is gone.
		c.log.Error().Err(err).Str("user_id", userID).Msg("authorized user not present in db")
		writeError(w, http.StatusInternalServerError, retryMsg)
		return
	}

	dbUser.Password = ""
	writeJSON(w, http.StatusOK, dbUser)
}
