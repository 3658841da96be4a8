// Package bot implements the Telegram conversation: share a location, pick an
// amenity, get map links to the closest options.
package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/UnknownOlympus/kiez/internal/datasets"
	"github.com/UnknownOlympus/kiez/internal/models"
	"github.com/UnknownOlympus/kiez/internal/ranker"
	"github.com/UnknownOlympus/kiez/internal/service"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Texts sent to users.
const (
	TextStart         = "Help me figure out where you are by sending me your location."
	TextLocation      = "Send current location"
	TextChoose        = "Which public amenity are you looking to find?"
	TextUpToDate      = "Lists are up to date"
	TextClosest       = "Closest Options:"
	TextProtests      = "Nearby Protests:"
	TextNothingFound  = "Nothing found nearby."
	TextBadRequest    = "Sorry, I could not read that request. Please send your location again."
	TextNotLoaded     = "Sorry, that list is not available yet. Please try again in a few minutes."
	TextUpdateRunning = "The lists are being updated right now. Please try again in a moment."
	TextUpdateFailed  = "Some lists could not be updated: %s"
	TextFailure       = "Sorry, something went wrong. Please try again later."
)

const (
	callbackUpdate = "update"
	mapsURL        = "https://maps.apple.com/maps"
)

// Callback data prefixes of the amenity buttons.
var callbackKinds = map[string]models.Category{
	"wc":    models.CategoryToilets,
	"water": models.CategoryFountains,
	"demo":  models.CategoryDemonstrations,
}

// Sender is the subset of *tgbotapi.BotAPI used by the bot.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Finder answers nearest amenity lookups.
type Finder interface {
	Nearest(ctx context.Context, category models.Category, query models.GeoPoint, k int) (service.Answer, error)
}

// Refresher reloads every dataset.
type Refresher interface {
	Refresh(ctx context.Context) (service.Report, error)
}

// Bot dispatches Telegram updates.
type Bot struct {
	log         *slog.Logger
	sender      Sender
	finder      Finder
	refresher   Refresher
	resultLimit int // candidates ranked per lookup
	buttonLimit int // candidates shown as buttons
}

func New(log *slog.Logger, sender Sender, finder Finder, refresher Refresher, resultLimit, buttonLimit int) *Bot {
	return &Bot{
		log:         log,
		sender:      sender,
		finder:      finder,
		refresher:   refresher,
		resultLimit: resultLimit,
		buttonLimit: buttonLimit,
	}
}

// Run handles updates until the context is done or the channel is closed.
// Every update is handled in its own goroutine; Run waits for them before returning.
func (b *Bot) Run(ctx context.Context, updates <-chan tgbotapi.Update) {
	var wg sync.WaitGroup
	defer wg.Wait()

	b.log.InfoContext(ctx, "Telegram bot started")
	for {
		select {
		case <-ctx.Done():
			b.log.InfoContext(ctx, "Telegram bot stopped.")
			return
		case update, ok := <-updates:
			if !ok {
				b.log.InfoContext(ctx, "Telegram update channel closed")
				return
			}
			wg.Add(1)
			go func() {
				defer wg.Done()
				b.HandleUpdate(ctx, update)
			}()
		}
	}
}

// HandleUpdate reacts to a single update.
func (b *Bot) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil && update.Message.Location != nil:
		b.handleLocation(ctx, update.Message)
	case update.Message != nil && update.Message.IsCommand() && update.Message.Command() == "start":
		b.handleStart(ctx, update.Message)
	}
}

func (b *Bot) handleStart(ctx context.Context, msg *tgbotapi.Message) {
	if msg.From != nil {
		b.log.InfoContext(ctx, "User started the conversation", "user", msg.From.ID)
	}

	keyboard := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButtonLocation(TextLocation)),
	)
	keyboard.OneTimeKeyboard = false

	reply := tgbotapi.NewMessage(msg.Chat.ID, TextStart)
	reply.ReplyMarkup = keyboard
	b.send(ctx, reply)
}

func (b *Bot) handleLocation(ctx context.Context, msg *tgbotapi.Message) {
	point := models.NewGeoPoint(msg.Location.Latitude, msg.Location.Longitude).String()

	keyboard := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("Public Toilet", "wc,"+point)),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("Potable Water", "water,"+point)),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("Demonstrations", "demo,"+point)),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("Update Lists", callbackUpdate)),
	)

	reply := tgbotapi.NewMessage(msg.Chat.ID, TextChoose)
	reply.ReplyMarkup = keyboard
	b.send(ctx, reply)
}

func (b *Bot) handleCallback(ctx context.Context, query *tgbotapi.CallbackQuery) {
	if _, err := b.sender.Request(tgbotapi.NewCallback(query.ID, "")); err != nil {
		b.log.WarnContext(ctx, "Failed to answer callback query", "error", err)
	}

	chatID, ok := callbackChat(query)
	if !ok {
		b.log.WarnContext(ctx, "Callback query without chat", "data", query.Data)
		return
	}

	if query.Data == callbackUpdate {
		b.handleRefresh(ctx, chatID)
		return
	}

	category, point, err := parseCallback(query.Data)
	if err != nil {
		b.log.WarnContext(ctx, "Malformed callback data", "data", query.Data, "error", err)
		b.send(ctx, tgbotapi.NewMessage(chatID, TextBadRequest))
		return
	}

	answer, err := b.finder.Nearest(ctx, category, point, b.resultLimit)
	if err != nil {
		b.send(ctx, tgbotapi.NewMessage(chatID, lookupFailureText(err)))
		if !errors.Is(err, service.ErrDatasetNotLoaded) {
			b.log.WarnContext(ctx, "Lookup failed", "category", category, "error", err)
		}
		return
	}

	b.send(ctx, resultMessage(chatID, category, answer.Results, b.buttonLimit))
}

func (b *Bot) handleRefresh(ctx context.Context, chatID int64) {
	report, err := b.refresher.Refresh(ctx)

	text := TextUpToDate
	switch {
	case errors.Is(err, service.ErrRefreshInProgress):
		text = TextUpdateRunning
	case err != nil:
		failed := make([]string, 0, len(report.Failed))
		for category := range report.Failed {
			failed = append(failed, string(category))
		}
		sort.Strings(failed)
		text = fmt.Sprintf(TextUpdateFailed, strings.Join(failed, ", "))
		b.log.WarnContext(ctx, "Refresh requested by user finished with failures", "error", err)
	}

	b.send(ctx, tgbotapi.NewMessage(chatID, text))
}

func (b *Bot) send(ctx context.Context, msg tgbotapi.MessageConfig) {
	if _, err := b.sender.Send(msg); err != nil {
		b.log.ErrorContext(ctx, "Failed to send message", "chat", msg.ChatID, "error", err)
	}
}

func callbackChat(query *tgbotapi.CallbackQuery) (int64, bool) {
	switch {
	case query.Message != nil && query.Message.Chat != nil:
		return query.Message.Chat.ID, true
	case query.From != nil:
		return query.From.ID, true
	default:
		return 0, false
	}
}

// parseCallback reads "<kind>,<lat>,<lon>" button data.
func parseCallback(data string) (models.Category, models.GeoPoint, error) {
	parts := strings.Split(data, ",")
	const fields = 3
	if len(parts) != fields {
		return "", models.GeoPoint{}, fmt.Errorf("expected %d fields, got %d", fields, len(parts))
	}

	category, ok := callbackKinds[parts[0]]
	if !ok {
		return "", models.GeoPoint{}, fmt.Errorf("unknown amenity kind %q", parts[0])
	}

	lat, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return "", models.GeoPoint{}, fmt.Errorf("invalid latitude: %w", err)
	}
	lon, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return "", models.GeoPoint{}, fmt.Errorf("invalid longitude: %w", err)
	}

	return category, models.NewGeoPoint(lat, lon), nil
}

func lookupFailureText(err error) string {
	switch {
	case errors.Is(err, service.ErrDatasetNotLoaded):
		return TextNotLoaded
	case errors.Is(err, ranker.ErrInvalidQuery), errors.Is(err, ranker.ErrInvalidArgument):
		return TextBadRequest
	default:
		return TextFailure
	}
}

func resultMessage(chatID int64, category models.Category, results []models.RankedResult, limit int) tgbotapi.MessageConfig {
	if len(results) == 0 {
		return tgbotapi.NewMessage(chatID, TextNothingFound)
	}

	header := TextClosest
	if category == models.CategoryDemonstrations {
		header = TextProtests
	}

	rows := make([][]tgbotapi.InlineKeyboardButton, 0, min(limit, len(results)))
	for _, result := range results[:min(limit, len(results))] {
		text, link := resultButton(category, result)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonURL(text, link)))
	}

	msg := tgbotapi.NewMessage(chatID, header)
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)

	return msg
}

// resultButton returns the label and map link of one ranked candidate.
// Demonstration locations are postcode estimates, so their link searches the address instead.
func resultButton(category models.Category, result models.RankedResult) (string, string) {
	candidate := result.Candidate
	if category == models.CategoryDemonstrations {
		text := fmt.Sprintf("~%.1fkm - %s", result.DistanceKm, candidate.Attr(datasets.AttrThema))
		place := fmt.Sprintf("%s,%s Berlin",
			candidate.Attr(datasets.AttrVersammlungsort), candidate.Attr(datasets.AttrPLZ))
		return text, mapLink(place)
	}

	text := fmt.Sprintf("%.2fkm - %s", result.DistanceKm, candidate.Name)
	return text, mapLink(candidate.Location.String())
}

func mapLink(q string) string {
	return mapsURL + "?q=" + strings.ReplaceAll(url.QueryEscape(q), "%2C", ",")
}
