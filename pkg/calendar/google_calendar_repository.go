package calendar

import (
	"context"
	"strings"
	"time"

	"github.com/dayboard-app/dayboard-backend/internal/google"
	"github.com/dayboard-app/dayboard-backend/pkg/communication"
	"github.com/dayboard-app/dayboard-backend/pkg/date"
	"github.com/dayboard-app/dayboard-backend/pkg/logger"
	"github.com/dayboard-app/dayboard-backend/pkg/users"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/oauth2"
	gcalendar "google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

const calendarID = "primary"

// GoogleCalendarRepository provides access to the Google Calendar of a single user
type GoogleCalendarRepository struct {
	Service        *gcalendar.Service
	Logger         logger.Interface
	user           *users.User
	userRepository users.UserRepositoryInterface
	tokenSource    oauth2.TokenSource
	lastToken      *oauth2.Token
}

// NewGoogleCalendarRepository builds the repository from the stored connection of a user
func NewGoogleCalendarRepository(ctx context.Context, u *users.User, userRepository users.UserRepositoryInterface, log logger.Interface) (*GoogleCalendarRepository, error) {
	config, err := google.ReadGoogleConfig()
	if err != nil {
		return nil, errors.Wrap(err, "problem reading google config")
	}

	token, err := u.GoogleCalendarConnection.Token()
	if err != nil {
		return nil, errors.Wrap(err, "problem decrypting calendar token")
	}

	tokenSource := config.TokenSource(ctx, token)

	service, err := gcalendar.NewService(ctx, option.WithTokenSource(tokenSource))
	if err != nil {
		return nil, errors.Wrap(err, "problem creating calendar service")
	}

	return &GoogleCalendarRepository{
		Service:        service,
		Logger:         log,
		user:           u,
		userRepository: userRepository,
		tokenSource:    tokenSource,
		lastToken:      token,
	}, nil
}

// FetchWindow fetches all events from the month before to the month after the anchor
func (c *GoogleCalendarRepository) FetchWindow(ctx context.Context, anchor time.Time) ([]Event, error) {
	windowStart := date.StartOfMonth(anchor.AddDate(0, -1, 0))
	windowEnd := date.EndOfMonth(anchor.AddDate(0, 1, 0))

	var events []Event
	pageToken := ""

	for {
		call := c.Service.Events.
			List(calendarID).
			TimeMin(windowStart.Format(time.RFC3339)).
			TimeMax(windowEnd.Format(time.RFC3339)).
			SingleEvents(true).
			OrderBy("startTime").
			MaxResults(250).
			Context(ctx)

		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		result, err := call.Do()
		if err != nil {
			return nil, classifyGoogleError(err)
		}

		for _, item := range result.Items {
			if item.Status == "cancelled" {
				continue
			}
			events = append(events, fromGoogleEvent(item))
		}

		pageToken = result.NextPageToken
		if pageToken == "" {
			break
		}
	}

	c.persistRefreshedToken(ctx)

	return events, nil
}

// CreateEvent pushes a new event to the primary calendar of the user
func (c *GoogleCalendarRepository) CreateEvent(ctx context.Context, event *Event, withConference bool) (*Event, error) {
	payload := GoogleEventPayload(event)

	if withConference {
		payload.ConferenceData = &gcalendar.ConferenceData{
			CreateRequest: &gcalendar.CreateConferenceRequest{
				RequestId: uuid.New().String(),
				ConferenceSolutionKey: &gcalendar.ConferenceSolutionKey{
					Type: "hangoutsMeet",
				},
			},
		}
	}

	call := c.Service.Events.Insert(calendarID, payload).Context(ctx)

	if withConference {
		call = call.ConferenceDataVersion(1)
	}

	created, err := call.Do()
	if err != nil {
		return nil, classifyGoogleError(err)
	}

	c.persistRefreshedToken(ctx)

	result := fromGoogleEvent(created)
	return &result, nil
}

// persistRefreshedToken stores the token again when the token source refreshed it
func (c *GoogleCalendarRepository) persistRefreshedToken(ctx context.Context) {
	token, err := c.tokenSource.Token()
	if err != nil {
		return
	}

	if c.lastToken != nil && token.AccessToken == c.lastToken.AccessToken {
		return
	}

	err = c.user.GoogleCalendarConnection.SetToken(token)
	if err != nil {
		c.Logger.Warning("Problem encrypting refreshed calendar token", err)
		return
	}

	err = c.userRepository.Update(ctx, c.user)
	if err != nil {
		c.Logger.Warning("Problem persisting refreshed calendar token", err)
		return
	}

	c.lastToken = token
}

// classifyGoogleError maps Google API failures to the errors the rest of the app understands
func classifyGoogleError(err error) error {
	if gErr, ok := err.(*googleapi.Error); ok {
		for _, item := range gErr.Errors {
			if item.Reason == "accessNotConfigured" {
				return communication.ErrCalendarAPIDisabled
			}
		}

		if strings.Contains(gErr.Message, "accessNotConfigured") {
			return communication.ErrCalendarAPIDisabled
		}

		if gErr.Code == 401 || gErr.Code == 403 {
			return communication.ErrCalendarAuthInvalid
		}
	}

	if retrieveErr, ok := err.(*oauth2.RetrieveError); ok {
		if retrieveErr.Response != nil && (retrieveErr.Response.StatusCode == 400 || retrieveErr.Response.StatusCode == 401) {
			return communication.ErrCalendarAuthInvalid
		}
	}

	return err
}

// fromGoogleEvent converts the wire representation into the domain event
func fromGoogleEvent(item *gcalendar.Event) Event {
	event := Event{
		CalendarEventID: item.Id,
		Title:           item.Summary,
		Description:     item.Description,
		Location:        item.Location,
		HTMLLink:        item.HtmlLink,
		MeetLink:        item.HangoutLink,
	}

	if item.Start != nil {
		if item.Start.Date != "" {
			event.AllDay = true
			event.Start.Date = item.Start.Date
		} else if start, ok := date.ParseSafe(item.Start.DateTime); ok {
			event.Start.DateTime = start
		}
	}

	if item.End != nil {
		if item.End.Date != "" {
			event.End.Date = item.End.Date
		} else if end, ok := date.ParseSafe(item.End.DateTime); ok {
			event.End.DateTime = end
		}
	}

	for _, attendee := range item.Attendees {
		if attendee.Email != "" {
			event.Attendees = append(event.Attendees, attendee.Email)
		}
	}

	if event.MeetLink == "" && item.ConferenceData != nil {
		for _, entryPoint := range item.ConferenceData.EntryPoints {
			if entryPoint.EntryPointType == "video" {
				event.MeetLink = entryPoint.Uri
				break
			}
		}
	}

	return event
}

// GoogleEventPayload converts a domain event into the wire representation.
// All day events carry only a date, timed events a full timestamp. An event
// without an end gets a default duration of one hour.
func GoogleEventPayload(event *Event) *gcalendar.Event {
	payload := &gcalendar.Event{
		Summary:     event.Title,
		Description: event.Description,
		Location:    event.Location,
	}

	if event.AllDay {
		payload.Start = &gcalendar.EventDateTime{Date: event.Start.Date}
		if event.End.Date != "" {
			payload.End = &gcalendar.EventDateTime{Date: event.End.Date}
		} else {
			payload.End = &gcalendar.EventDateTime{Date: event.Start.Date}
		}
	} else {
		payload.Start = &gcalendar.EventDateTime{DateTime: event.Start.DateTime.Format(time.RFC3339)}

		end := event.End.DateTime
		if end.IsZero() {
			end = event.Start.DateTime.Add(time.Hour)
		}
		payload.End = &gcalendar.EventDateTime{DateTime: end.Format(time.RFC3339)}
	}

	for _, attendee := range event.Attendees {
		if attendee == "" {
			continue
		}
		payload.Attendees = append(payload.Attendees, &gcalendar.EventAttendee{Email: attendee})
	}

	return payload
}
