package conversation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ojoconmipisto/superbot/pkg/vocab"
)

// unsubscribeRe matches the whole trimmed lowercase message, never a
// substring, so department names like "Baja Verapaz" don't trigger it
var unsubscribeRe = regexp.MustCompile(`^(parar|detener|baja|dar de baja|darme de baja)$`)

// greetings an active subscriber may open with
var greetings = map[string]bool{
	"hola":          true,
	"buenas":        true,
	"buenos días":   true,
	"buenas tardes": true,
	"buenas noches": true,
	"hello":         true,
	"hi":            true,
}

// update commands restarting the full collection flow
var updateCommands = map[string]bool{
	"cambiar":    true,
	"actualizar": true,
}

const (
	msgWelcome = "👋 ¡Te damos la bienvenida al *WhatsApp de Ojoconmipisto*! 🕵️‍♂️\n\n" +
		"A través de este servicio, *el Súper* 🦸🏻‍♂️ te mandará las notas que se adaptan a tus intereses.\n\n" +
		"Inicia el chat, sigue las instrucciones y listo, ya estarás dentro de nuestra *comunidad fiscalizadora*. 🧾🗳️"

	msgAskName = "👋 ¿Cuál es tu nombre?"

	msgUpdateStart = "🔄 Vamos a actualizar tus datos. ¿Cuál es tu nombre?"

	msgAlreadySubscribed = "👋 Ya estás suscrito. Escribe *cambiar* para actualizar tus preferencias o *parar* para darte de baja."

	msgUnsubscribed = "❌ Te has desuscrito. Ya no recibirás mensajes."

	msgNotSubscribed = "No estabas suscrito. Si deseas suscribirte, escribe *hola*."

	msgNeedDepartment = "⚠️ Por favor indica al menos un departamento."
)

func msgAskDepartments(name string) string {
	return fmt.Sprintf("📍 ¿Dime *%s* de qué departamento(s) te interesa recibir información? "+
		`(puedes escribir varios separados por coma, "y" o "e")`, name)
}

func msgAskTopics(name string) string {
	return fmt.Sprintf("🗂️ Muy bien *%s*, ahora dime: ¿qué temas son los que más te interesan? "+
		"(puedes escribir varios separados por coma, \"y\" o \"e\")\n\n"+
		"También puedes escribir *Todos* para recibir información de todos los temas.\n\n"+
		"Temas válidos:\n- %s", name, strings.Join(vocab.Topics, "\n- "))
}

func msgInvalidTopics() string {
	return "⚠️ Algunos temas no son válidos. Asegúrate de usar únicamente los siguientes:\n- " +
		strings.Join(vocab.Topics, "\n- ") + "\n\nTambién puedes escribir *Todos*."
}

func msgSubscribed(name string) string {
	return fmt.Sprintf("✅ ¡Gracias *%s*! Te estaremos enviando información relevante pronto.", name)
}

func msgReactivated(name string) string {
	return fmt.Sprintf("🔄 Bienvenido de nuevo *%s*! Tus preferencias han sido actualizadas.", name)
}

// isUnsubscribe reports whether the trimmed message is an exact
// unsubscribe command
func isUnsubscribe(text string) bool {
	return unsubscribeRe.MatchString(vocab.CollapseSpaces(strings.ToLower(text)))
}

func isGreeting(lower string) bool {
	return greetings[lower]
}

func isUpdateCommand(lower string) bool {
	return updateCommands[lower]
}
