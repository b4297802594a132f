package users

import (
	"encoding/json"
	"time"

	"github.com/dayboard-app/dayboard-backend/pkg/auth/encryption"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/oauth2"
)

// User is the model for a dashboard user. Identity is owned by the external
// auth provider, this document only carries profile and connection state.
type User struct {
	ID             primitive.ObjectID `json:"id" bson:"_id"`
	CreatedAt      time.Time          `json:"createdAt" bson:"createdAt"`
	LastModifiedAt time.Time          `json:"lastModifiedAt" bson:"lastModifiedAt"`
	Firstname      string             `json:"firstname" bson:"firstname" validate:"required"`
	Lastname       string             `json:"lastname" bson:"lastname" validate:"required"`
	Email          string             `json:"email" bson:"email" validate:"required,email"`

	DeviceTokens []DeviceToken `json:"-" bson:"deviceTokens,omitempty"`

	GoogleCalendarConnection GoogleCalendarConnection `json:"-" bson:"googleCalendarConnection,omitempty"`
}

// DeviceToken is a push messaging registration of one device
type DeviceToken struct {
	Token          string    `json:"token" bson:"token"`
	LastRegistered time.Time `json:"lastRegistered" bson:"lastRegistered"`
}

// GoogleCalendarConnection holds the user's calendar access. The oauth token
// is persisted encrypted, it survives reloads but is not guaranteed valid.
type GoogleCalendarConnection struct {
	EncryptedToken string `json:"-" bson:"encryptedToken,omitempty"`
	StateToken     string `json:"stateToken,omitempty" bson:"stateToken,omitempty"`
}

// SetToken encrypts and stores an oauth token
func (c *GoogleCalendarConnection) SetToken(token *oauth2.Token) error {
	binary, err := json.Marshal(token)
	if err != nil {
		return err
	}

	encrypted, err := encryption.Encrypt(string(binary))
	if err != nil {
		return err
	}

	c.EncryptedToken = encrypted

	return nil
}

// Token decrypts the stored oauth token, nil when no token is stored
func (c *GoogleCalendarConnection) Token() (*oauth2.Token, error) {
	if c.EncryptedToken == "" {
		return nil, nil
	}

	decrypted, err := encryption.Decrypt(c.EncryptedToken)
	if err != nil {
		return nil, err
	}

	token := oauth2.Token{}
	err = json.Unmarshal([]byte(decrypted), &token)
	if err != nil {
		return nil, err
	}

	return &token, nil
}

// ClearToken drops the stored token, forcing re-authentication
func (c *GoogleCalendarConnection) ClearToken() {
	c.EncryptedToken = ""
}
