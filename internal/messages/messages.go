package messages

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/BruksfildServices01/barber-queue/internal/domain/crm"
	"github.com/BruksfildServices01/barber-queue/internal/domain/queue"
	"github.com/BruksfildServices01/barber-queue/internal/validators"
)

func firstName(name string) string {
	if f := strings.Fields(name); len(f) > 0 {
		return f[0]
	}
	return name
}

// JoinConfirmation is sent when a client enters the queue.
func JoinConfirmation(name string, position int, link string) string {
	return fmt.Sprintf(
		"Olá %s! Você foi adicionado à fila da barbearia. Sua posição: %dº. Acesse o link para acompanhar em tempo real: %s",
		name, position, link,
	)
}

func StatusUpdate(name string, position int, etaMinutes int) string {
	if position <= 1 {
		return fmt.Sprintf("Olá %s! Você é o próximo da fila. Pode vir para a cadeira!", firstName(name))
	}
	return fmt.Sprintf(
		"Olá %s! Sua posição atual: %dº. Tempo estimado: %s.",
		firstName(name), position, queue.FormatDuration(etaMinutes),
	)
}

// NextInLine is the alert raised when a client reaches position 1.
func NextInLine(name string) (title, body string) {
	return "Você é o próximo! 💈", fmt.Sprintf("%s, chegou a sua vez. Dirija-se à cadeira.", firstName(name))
}

func LoyaltyShare(name string, totalVisits int64) string {
	card := crm.Loyalty(totalVisits)
	return fmt.Sprintf(
		"Olá %s! 💈\n\nAqui está seu Cartão Fidelidade digital atualizado! 👇\n\nFaltam apenas *%d* visitas para completar o nível.",
		firstName(name), card.Remaining,
	)
}

func WinBack(name string) string {
	return fmt.Sprintf("Olá %s! Sumiu, cara! 😅 Bora dar aquele talento no visual essa semana?", firstName(name))
}

// StatusLink is the public page where a client follows the queue.
func StatusLink(baseURL, slug, entryID string) string {
	return fmt.Sprintf("%s/fila/%s/%s", strings.TrimRight(baseURL, "/"), url.PathEscape(slug), url.PathEscape(entryID))
}

// WhatsAppLink opens a chat with text prefilled. Numbers without the
// country code are assumed to be Brazilian.
func WhatsAppLink(phone, text string) string {
	digits := validators.Digits(phone)
	if !strings.HasPrefix(digits, "55") || len(digits) <= 11 {
		digits = "55" + digits
	}
	return "https://wa.me/" + digits + "?text=" + url.QueryEscape(text)
}
