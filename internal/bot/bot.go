package bot

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"favobot/internal/config"
	"favobot/internal/orders"
	"favobot/internal/parse"
	"favobot/internal/report"
	"favobot/internal/session"
	"favobot/internal/storage"
)

const (
	buttonOrder  = "🧾 Заявка"
	buttonPrices = "💸 Цены"
)

// Bot runs the Telegram intake loop: long-polls updates, drives the
// step-by-step order form, and hands free-text messages to the parser.
type Bot struct {
	api      *tgbotapi.BotAPI
	cfg      config.Config
	db       *storage.DB
	svc      *orders.Service
	sessions *session.Store
	limiter  *RateLimiter
	log      *logrus.Logger
}

func New(cfg config.Config, db *storage.DB, log *logrus.Logger) (*Bot, error) {
	if err := cfg.Require("BOT_TOKEN", cfg.BotToken); err != nil {
		return nil, err
	}

	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("telegram init: %w", err)
	}
	api.Debug = cfg.BotDebug

	log.Infof("telegram bot authorized as @%s", api.Self.UserName)

	return &Bot{
		api:      api,
		cfg:      cfg,
		db:       db,
		svc:      orders.NewService(db),
		sessions: session.NewStore(),
		limiter:  NewRateLimiter(cfg.BotSendRatePerSec),
		log:      log,
	}, nil
}

// Run polls updates until the context is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.cfg.BotPollTimeoutSec

	updates := b.api.GetUpdatesChan(u)
	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.handleUpdate(update)
		}
	}
}

func (b *Bot) handleUpdate(update tgbotapi.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}
	msg := update.Message
	log := b.log.WithFields(logrus.Fields{
		"chat_id": msg.Chat.ID,
		"user_id": msg.From.ID,
	})

	if msg.IsCommand() {
		b.handleCommand(msg, log)
		return
	}
	b.handleText(msg, log)
}

func (b *Bot) handleCommand(msg *tgbotapi.Message, log *logrus.Entry) {
	switch msg.Command() {
	case "start", "help":
		b.sendKeyboard(msg.Chat.ID, helpText(b.cfg.IsAdmin(msg.From.ID)))
	case "whoami":
		b.send(msg.Chat.ID, fmt.Sprintf("Твой user_id: %d", msg.From.ID))
	case "shops":
		if !b.cfg.IsAdmin(msg.From.ID) {
			b.send(msg.Chat.ID, "Эта команда доступна только администратору.")
			return
		}
		b.handleShops(msg.Chat.ID, log)
	case "export_compact":
		if !b.cfg.IsAdmin(msg.From.ID) {
			b.send(msg.Chat.ID, "Эта команда доступна только администратору.")
			return
		}
		b.handleExport(msg.Chat.ID, strings.TrimSpace(msg.CommandArguments()), log)
	default:
		// unknown commands are ignored
	}
}

func (b *Bot) handleText(msg *tgbotapi.Message, log *logrus.Entry) {
	text := strings.TrimSpace(msg.Text)

	// Announcements open the intake window for a chat: later orders
	// without their own date are filed under the announced one.
	if parse.IsOrderHeader(text) {
		if date := parse.NormalizeOrderDate(text); date != nil {
			b.sessions.SetCurrentDate(msg.Chat.ID, *date)
			b.send(msg.Chat.ID, fmt.Sprintf("📅 Принял. Дата заявок: %s", *date))
		} else {
			b.send(msg.Chat.ID, "📅 Принял сообщение о приёме заявок.")
		}
		return
	}

	if text == "" {
		return
	}

	if _, active := b.sessions.Form(msg.Chat.ID); active {
		b.handleFormStep(msg, log)
		return
	}

	switch text {
	case buttonOrder, "Заявка":
		b.sessions.Begin(msg.Chat.ID)
		b.send(msg.Chat.ID, "🧾 Новая заявка\n\nШаг 1 — Как называется магазин?")
		return
	case buttonPrices, "Цены":
		b.send(msg.Chat.ID, "Прайс пока не подключён 💛")
		return
	}

	if strings.HasPrefix(text, "/") {
		return
	}

	b.handleFreeText(msg, text, log)
}

func (b *Bot) handleFormStep(msg *tgbotapi.Message, log *logrus.Entry) {
	chatID := msg.Chat.ID
	text := strings.TrimSpace(msg.Text)

	if low := strings.ToLower(text); low == "отмена" || low == "cancel" {
		b.sessions.Clear(chatID)
		b.sendKeyboard(chatID, "Ок, отменил 💛")
		return
	}

	form, _ := b.sessions.Form(chatID)
	switch form.Step {
	case session.StepShop:
		form.ShopName = text
		if id, err := b.db.GetOrCreateShop(text); err != nil {
			log.WithError(err).Error("shop lookup failed")
		} else {
			form.ShopID = id
		}
		form.Step = session.StepDate
		b.sessions.Put(chatID, form)
		b.send(chatID, "На какую дату заявка? (например: 06.11.2025)\nМожно написать: сегодня")

	case session.StepDate:
		if strings.EqualFold(text, "сегодня") || text == "" {
			form.OrderDate = parse.Today()
		} else {
			form.OrderDate = text
		}
		form.Step = session.StepItems
		b.sessions.Put(chatID, form)
		b.send(chatID, "Теперь пришли список позиций одним сообщением.\n"+
			"Например:\n"+
			"Жигули 3\n"+
			"Немецкое акция\n"+
			"Пэт 2л-1\n\n"+
			"Когда закончишь — просто отправь.")

	case session.StepItems:
		res := parse.ParseMessage(text, form.ShopName, form.OrderDate)
		b.sessions.Clear(chatID)

		rec, err := b.svc.Record(res, chatID, msg.MessageID, text, form.OrderDate)
		if err != nil {
			log.WithError(err).Warn("form order rejected")
			b.sendKeyboard(chatID, "⚠ Не смог разобрать позиции. Попробуй ещё раз.")
			return
		}

		log.WithFields(logrus.Fields{
			"trace_id": rec.TraceID,
			"order_id": rec.OrderID,
			"items":    rec.Items,
		}).Info("form order recorded")
		b.sendKeyboard(chatID, fmt.Sprintf(
			"Заявка оформлена ✅\n🏪 Магазин: %s\n📅 Дата: %s\n📦 Позиции: %d",
			form.ShopName, rec.OrderDate, rec.Items))
	}
}

func (b *Bot) handleFreeText(msg *tgbotapi.Message, text string, log *logrus.Entry) {
	res := parse.ParseMessage(text, "", "")
	rec, err := b.svc.Record(res, msg.Chat.ID, msg.MessageID, text, b.sessions.CurrentDate(msg.Chat.ID))
	if err != nil {
		log.WithError(err).Debug("message not recognized as order")
		b.send(msg.Chat.ID, "⚠ Я не смог понять сообщение как заявку.")
		return
	}

	shop := res.Shop
	if shop == "" {
		shop = "неизвестный магазин"
	}
	log.WithFields(logrus.Fields{
		"trace_id": rec.TraceID,
		"order_id": rec.OrderID,
		"items":    rec.Items,
		"review":   rec.Review,
	}).Info("order recorded")
	b.send(msg.Chat.ID, fmt.Sprintf("%s ✓ %d позиций", shop, rec.Items))
}

func (b *Bot) handleShops(chatID int64, log *logrus.Entry) {
	shops, err := b.db.ListShops()
	if err != nil {
		log.WithError(err).Error("shops listing failed")
		b.send(chatID, "Ошибка чтения справочника магазинов.")
		return
	}
	if len(shops) == 0 {
		b.send(chatID, "Справочник магазинов пуст.")
		return
	}

	lines := []string{"📒 Список магазинов:"}
	for _, s := range shops {
		status := "🔴"
		if s.Active {
			status = "🟢"
		}
		lines = append(lines, fmt.Sprintf("%s %d. %s  (%s)", status, s.ID, s.Name, s.DateAdded))
	}
	b.sendChunked(chatID, lines)
}

func (b *Bot) handleExport(chatID int64, arg string, log *logrus.Entry) {
	orderDate := arg
	if orderDate == "" {
		orderDate = parse.Today()
	}

	rep, err := b.svc.ReportForDate(orderDate)
	if err != nil {
		log.WithError(err).Error("report build failed")
		b.send(chatID, "Ошибка формирования отчёта.")
		return
	}
	if len(rep.Rows) == 0 {
		b.send(chatID, fmt.Sprintf("На %s пока нет заявок.", orderDate))
		return
	}

	path, err := report.ExportXLSX(rep, b.cfg.OutputDir)
	if err != nil {
		log.WithError(err).Error("xlsx export failed")
		b.send(chatID, "Ошибка выгрузки отчёта.")
		return
	}

	doc := tgbotapi.NewDocument(chatID, tgbotapi.FilePath(path))
	doc.Caption = fmt.Sprintf("Отчёт по заявкам на %s", orderDate)
	b.limiter.WaitTurn()
	if _, err := b.api.Send(doc); err != nil {
		log.WithError(err).Error("document send failed")
	}
}

func (b *Bot) send(chatID int64, text string) {
	b.limiter.WaitTurn()
	if _, err := b.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		b.log.WithError(err).WithField("chat_id", chatID).Error("message send failed")
	}
}

func (b *Bot) sendKeyboard(chatID int64, text string) {
	m := tgbotapi.NewMessage(chatID, text)
	m.ReplyMarkup = mainKeyboard()
	b.limiter.WaitTurn()
	if _, err := b.api.Send(m); err != nil {
		b.log.WithError(err).WithField("chat_id", chatID).Error("message send failed")
	}
}

// Telegram caps messages at 4096 chars; long listings go out in batches.
func (b *Bot) sendChunked(chatID int64, lines []string) {
	var chunk []string
	size := 0
	for _, line := range lines {
		if size+len(line)+1 > 3000 && len(chunk) > 0 {
			b.send(chatID, strings.Join(chunk, "\n"))
			chunk = nil
			size = 0
		}
		chunk = append(chunk, line)
		size += len(line) + 1
	}
	if len(chunk) > 0 {
		b.send(chatID, strings.Join(chunk, "\n"))
	}
}

func mainKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(buttonOrder)),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(buttonPrices)),
	)
	kb.ResizeKeyboard = true
	return kb
}

func helpText(isAdmin bool) string {
	if isAdmin {
		return "Привет! Я FavoBot.\n\n" +
			"📌 Клиентская часть:\n" +
			"• Нажми «🧾 Заявка» — оформим заявку по шагам.\n" +
			"• Можно просто прислать текстом заявку — я разберу.\n" +
			"• «💸 Цены» — позже привяжем к прайсу.\n\n" +
			"📊 Админ-команды:\n" +
			"• /export_compact 06.11.2025 — Excel за дату\n" +
			"• /export_compact — за сегодня\n" +
			"• /shops — список всех магазинов\n" +
			"• /whoami — твой user_id"
	}
	return "Привет! Я FavoBot.\n\n" +
		"Ты можешь:\n" +
		"• жать «🧾 Заявка» и оформлять заказ по шагам;\n" +
		"• отправлять заявки просто текстом.\n\n" +
		"Остальные команды доступны только администратору.\n" +
		"Узнать свой ID можно командой /whoami."
}
