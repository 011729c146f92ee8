package notify

import (
	"context"
	"fmt"
	"log"
	"strings"

	"alpha_oracle/internal/ledger"
	"alpha_oracle/internal/models"

	tgbot "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type Notifier interface {
	Send(msg string)
	Sendf(format string, args ...any)
}

// Telegram — пассивный нотифайер + обработка одной команды /stats.
type Telegram struct {
	bot    *tgbot.BotAPI
	chatID int64
	store  *ledger.Store
}

func NewTelegram(token string, chatID int64, store *ledger.Store) (*Telegram, error) {
	b, err := tgbot.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	return &Telegram{
		bot:    b,
		chatID: chatID,
		store:  store,
	}, nil
}

func (t *Telegram) Send(msg string) {
	if t == nil || t.bot == nil || t.chatID == 0 {
		return
	}
	_, _ = t.bot.Send(tgbot.NewMessage(t.chatID, msg))
}

func (t *Telegram) Sendf(format string, args ...any) { t.Send(fmt.Sprintf(format, args...)) }

// FormatTopSignals — сводка по топовым слитым сигналам после скана.
func FormatTopSignals(signals []models.MergedSignal, limit int) string {
	if len(signals) == 0 {
		return "⚠️ Сильных сигналов нет"
	}
	if limit > len(signals) {
		limit = len(signals)
	}

	var b strings.Builder
	b.WriteString("🏆 TOP SMART MONEY SIGNALS:\n")
	for i, sig := range signals[:limit] {
		arrow := "🔴"
		if sig.Direction == models.DirectionLong {
			arrow = "🟢"
		}
		srcs := make([]string, 0, len(sig.Sources))
		for _, s := range sig.Sources {
			srcs = append(srcs, strings.TrimPrefix(string(s), "nansen_smart_money_"))
		}
		fmt.Fprintf(&b, "%d. %s %s %s (%s) | Flow: %+.0f | Conf: %.0f%% | Sources: %s\n",
			i+1, arrow, sig.Direction, sig.Symbol, sig.Chain,
			sig.NetFlowUSD, sig.Confidence*100, strings.Join(srcs, "+"))
	}
	return b.String()
}

// /stats — сводка журнала прогнозов
func (t *Telegram) handleStats(ctx context.Context) {
	if t.store == nil {
		t.Send("❗️ Журнал прогнозов не подключён")
		return
	}
	st, err := t.store.Stats(ctx)
	if err != nil {
		t.Sendf("❗️ Ошибка чтения журнала: %v", err)
		return
	}
	t.Sendf("📈 Oracle Stats:\nTotal: %d\nActive: %d\nWon: %d\nLost: %d\nPending: %d\nWin rate: %.1f%%",
		st.Total, st.Active, st.Won, st.Lost, st.Pending, st.WinRate)
}

// Start: long-polling только ради команды /stats.
func (t *Telegram) Start(ctx context.Context) error {
	if t == nil || t.bot == nil {
		return nil
	}

	u := tgbot.NewUpdate(0)
	u.Timeout = 30
	u.AllowedUpdates = []string{"message"}

	updates := t.bot.GetUpdatesChan(u)
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case upd := <-updates:
				if upd.Message != nil && upd.Message.Chat != nil &&
					upd.Message.Chat.ID == t.chatID && upd.Message.IsCommand() {

					switch upd.Message.Command() {
					case "stats":
						go t.handleStats(ctx)
					}
				}
			}
		}
	}()
	return nil
}

func (t *Telegram) Stop() {}

// Stdout — заглушка, всё пишет в лог.
type Stdout struct{}

func NewStdout() *Stdout                           { return &Stdout{} }
func (s *Stdout) Send(msg string)                  { log.Println(msg) }
func (s *Stdout) Sendf(format string, args ...any) { log.Printf(format, args...) }
