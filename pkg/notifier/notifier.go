package notifier

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	tele "gopkg.in/telebot.v3"

	"ridedispatch/pkg/logger"
	"ridedispatch/pkg/maps"
	"ridedispatch/pkg/models"
)

// Notifier tells drivers about rides assigned to them.
type Notifier interface {
	RideAssigned(ctx context.Context, driver *models.Driver, ride *models.Ride) error
}

type TelegramNotifier struct {
	bot *tele.Bot
	log logger.ILogger
}

// sendTimeout bounds a single Bot API call even when the caller has no deadline.
const sendTimeout = 10 * time.Second

// NewTelegram builds a send-only bot. apiURL may be empty to use the public Bot API.
func NewTelegram(token, apiURL string, log logger.ILogger) (*TelegramNotifier, error) {
	b, err := tele.NewBot(tele.Settings{
		Token:   token,
		URL:     apiURL,
		Offline: true,
		Client:  &http.Client{Timeout: sendTimeout},
	})
	if err != nil {
		return nil, err
	}
	return &TelegramNotifier{bot: b, log: log}, nil
}

func (n *TelegramNotifier) RideAssigned(ctx context.Context, driver *models.Driver, ride *models.Ride) error {
	if driver.TelegramID == nil || *driver.TelegramID == 0 {
		return nil
	}
	err := n.send(ctx, *driver.TelegramID, FormatAssignment(ride))
	if err != nil {
		n.log.Warning("failed to notify driver",
			logger.Int64("driver_id", driver.ID),
			logger.Int64("ride_id", ride.ID),
			logger.Error(err),
		)
		return err
	}
	n.log.Info("driver notified", logger.Int64("driver_id", driver.ID), logger.Int64("ride_id", ride.ID))
	return nil
}

// send gives up when ctx is done. telebot has no context-aware API, so the
// request itself keeps running until sendTimeout.
func (n *TelegramNotifier) send(ctx context.Context, chatID int64, text string) error {
	done := make(chan error, 1)
	go func() {
		_, err := n.bot.Send(&tele.User{ID: chatID}, text)
		done <- err
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func FormatAssignment(ride *models.Ride) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🚕 New ride #%d\n", ride.ID)
	for i, wp := range ride.Waypoints {
		label := wp.Address
		if label == "" {
			label = maps.FormatPoint(models.LatLng{Lat: wp.Lat, Lng: wp.Lng})
		}
		fmt.Fprintf(&b, "%d. %s\n", i+1, label)
	}
	if ride.ScheduledAt != nil {
		fmt.Fprintf(&b, "📅 %s\n", ride.ScheduledAt.Format("2006-01-02 15:04"))
	}
	fmt.Fprintf(&b, "💰 %s", ride.Price.StringFixed(2))
	if ride.Comment != nil && *ride.Comment != "" {
		fmt.Fprintf(&b, "\n💬 %s", *ride.Comment)
	}
	return b.String()
}

// Nop is used when no driver bot token is configured.
type Nop struct{}

func (Nop) RideAssigned(context.Context, *models.Driver, *models.Ride) error { return nil }
