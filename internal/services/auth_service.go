package services

import (
	"fmt"
	"log"
	"sync"

	"github.com/authorizerdev/authorizer-go"
	"github.com/localnerve/garmentdb/internal/config"
	"github.com/localnerve/garmentdb/internal/models"
	"github.com/localnerve/garmentdb/internal/types"
	"github.com/localnerve/garmentdb/internal/utils"
	"gorm.io/gorm"
)

var (
	authClient *authorizer.AuthorizerClient
	authOnce   sync.Once
)

// IsAuthorizerInitialized returns true if the Authorizer client is initialized
func IsAuthorizerInitialized() bool {
	return authClient != nil
}

// InitAuthorizer initializes the Authorizer client (singleton pattern)
func InitAuthorizer(cfg *config.Config, requestProtocol, requestHost string) error {
	var initErr error

	authOnce.Do(func() {
		// Ping the Authorizer service first
		if err := utils.PingAuthorizer(cfg.AuthzURL); err != nil {
			initErr = fmt.Errorf("authorizer ping failed: %w", err)
			return
		}

		redirectURL := fmt.Sprintf("%s://%s", requestProtocol, requestHost)
		log.Printf("Initializing Authorizer: authorizerURL=%s, clientID=%s, redirectURL=%s",
			cfg.AuthzURL, cfg.AuthzClientID, redirectURL)

		var err error
		authClient, err = authorizer.NewAuthorizerClient(cfg.AuthzClientID, cfg.AuthzURL, redirectURL, nil)
		if err != nil {
			initErr = fmt.Errorf("failed to create authorizer client: %w", err)
			return
		}
	})

	return initErr
}

// ValidateSession validates a session cookie and returns the Authorizer
// user id. Role checks are not delegated to Authorizer: the actor row in
// the database is the source of truth for roles.
func ValidateSession(cookie string) (string, error) {
	if authClient == nil {
		return "", fmt.Errorf("authorizer client not initialized")
	}

	res, err := authClient.ValidateSession(&authorizer.ValidateSessionInput{
		Cookie: cookie,
	})
	if err != nil {
		return "", fmt.Errorf("session validation failed: %w", err)
	}

	if res == nil || !res.IsValid {
		return "", fmt.Errorf("session is not valid")
	}
	if res.User == nil || res.User.ID == "" {
		return "", fmt.Errorf("session carries no user")
	}

	return res.User.ID, nil
}

// GetActor loads the actor profile for an Authorizer user id.
func GetActor(db *gorm.DB, id string) (*models.Actor, error) {
	var actor models.Actor
	if err := db.First(&actor, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, types.NotFound("Actor profile not found")
		}
		return nil, err
	}
	return &actor, nil
}
