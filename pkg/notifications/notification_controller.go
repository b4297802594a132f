package notifications

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"github.com/dayboard-app/dayboard-backend/pkg/environment"
	"github.com/dayboard-app/dayboard-backend/pkg/logger"
	"github.com/dayboard-app/dayboard-backend/pkg/reminders"
	"github.com/dayboard-app/dayboard-backend/pkg/users"
	"google.golang.org/api/option"
)

// NotificationController pushes reminder changes to all registered devices of
// a user so other open dashboards refresh
type NotificationController struct {
	Messaging      *messaging.Client
	UserRepository users.UserRepositoryInterface
	Logger         logger.Interface
}

// NewNotificationController builds a new NotificationController instance
func NewNotificationController(ctx context.Context, userRepository users.UserRepositoryInterface, log logger.Interface) (*NotificationController, error) {
	var opts []option.ClientOption
	if environment.Global.Firebase != "" {
		opts = append(opts, option.WithCredentialsFile(environment.Global.Firebase))
	}

	config := &firebase.Config{ProjectID: environment.Global.GcpProjectID}

	app, err := firebase.NewApp(ctx, config, opts...)
	if err != nil {
		return nil, err
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, err
	}

	return &NotificationController{
		Messaging:      client,
		UserRepository: userRepository,
		Logger:         log,
	}, nil
}

// OnNotify gets called when a reminder changes
func (c *NotificationController) OnNotify(reminder *reminders.Reminder) {
	ctx := context.Background()

	u, err := c.UserRepository.FindByID(ctx, reminder.UserID.Hex())
	if err != nil {
		c.Logger.Error("Could not find user for reminder notification", err)
		return
	}

	tokens := make([]string, 0, len(u.DeviceTokens))
	for _, deviceToken := range u.DeviceTokens {
		tokens = append(tokens, deviceToken.Token)
	}

	if len(tokens) == 0 {
		return
	}

	message := &messaging.MulticastMessage{
		Tokens: tokens,
		Data: map[string]string{
			"type":       "reminderChanged",
			"reminderId": reminder.ID.Hex(),
		},
	}

	response, err := c.Messaging.SendMulticast(ctx, message)
	if err != nil {
		c.Logger.Error("Problem sending reminder notification", err)
		return
	}

	if response.FailureCount > 0 {
		c.Logger.Info(fmt.Sprintf("Reminder notification failed for %d of %d devices",
			response.FailureCount, len(tokens)))
	}
}
