package digest

import (
	"fmt"
	"strings"
	"time"

	"github.com/ojoconmipisto/superbot/pkg/domain"
	"github.com/ojoconmipisto/superbot/pkg/vocab"
)

// titleToken is the placeholder intro phrases carry for the headline
const titleToken = "[TITULAR]"

// dailyIntroPhrases open each daily note, one picked at random per item
var dailyIntroPhrases = []string{
	"Mientras que [TITULAR],",
	"Te contamos que [TITULAR],",
	"Te sacamos de la duda [TITULAR],",
	"¿Ya te enteraste que [TITULAR]?",
	"Esto pasó hoy: [TITULAR]",
	"Por si no sabías [TITULAR]",
	"¿Viste que [TITULAR]?",
}

var weeklyIntroPhrases = []string{
	"Esta semana te contamos que [TITULAR],",
	"En los últimos días se habló de que [TITULAR],",
	"No te pierdas esta nota: [TITULAR],",
	"Durante la semana, [TITULAR].",
	"El Súper investigó y encontró que [TITULAR].",
	"Esta semana, Ojoconmipisto publicó que [TITULAR].",
}

// renderMessage builds the single consolidated message for one
// recipient. Links are rendered without the scheme so the chat client
// does not unfurl a preview for every note.
func renderMessage(mode Mode, name string, items []domain.ContentItem, fact *domain.FactOfDay,
	special *domain.SpecialMessage, phrase func() string) string {

	var b strings.Builder

	if mode == ModeWeekly {
		b.WriteString(fmt.Sprintf("🧵 *Resumen semanal de tus temas*\nHola %s!\n\n", name))
	} else {
		b.WriteString(fmt.Sprintf("🌇 ¡Buenas tardes %s! Te traigo el resumen del día.\n\n", name))
	}

	if special != nil && special.Position == domain.PositionStart {
		b.WriteString(special.Text + "\n\n")
	}

	if len(items) > 0 {
		if mode == ModeWeekly {
			b.WriteString("📌 Estas son las noticias semanales relacionadas con tus temas:\n\n")
		} else {
			b.WriteString("📌 Estas son tus noticias de hoy:\n\n")
		}
		for _, item := range items {
			opener := strings.ReplaceAll(phrase(), titleToken, item.Title)
			b.WriteString(fmt.Sprintf("• %s\n%s\n\n", opener, vocab.StripScheme(item.Link)))
		}
		if mode == ModeWeekly {
			b.WriteString("📅 Publicadas en los últimos 7 días.\n")
		}
	}

	if fact != nil {
		b.WriteString(fmt.Sprintf("\n📊 *#OjoAlDato*\n%s\n", fact.Text))
	}

	if special != nil && special.Position == domain.PositionEnd {
		b.WriteString("\n" + special.Text + "\n")
	}

	return b.String()
}

// renderSummary builds the operator report closing a run
func renderSummary(mode Mode, res Result, finished time.Time) string {
	stamp := finished.Format("02/01/2006 15:04:05")
	if mode == ModeWeekly {
		return fmt.Sprintf("🟢 *Envío semanal completado*\n📨 Envíos realizados: %d\n❌ Errores: %d\n🕒 %s",
			res.Sent, res.Errors, stamp)
	}
	return fmt.Sprintf("🟢 *Envío diario completado*\n\n✅ Enviados: %d\n❌ Errores: %d\n🕒 Hora de finalización: %s",
		res.Sent, res.Errors, stamp)
}
