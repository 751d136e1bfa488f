package services

import (
	"fmt"
	"math/rand"
)

// ReplyTemplates are the canned system responses. Each takes the display name
// as its only substitution.
var ReplyTemplates = []string{
	"Obrigado, %s. Em breve nossa equipe retornará.",
	"Recebemos sua mensagem, %s — já encaminhamos para o time.",
	"Perfeito, %s! Em instantes alguém irá falar com você.",
	"Sua solicitação foi registrada, %s. Acompanhe por aqui.",
	"Obrigado! Um especialista entrará em contato em breve, %s.",
}

// ReplySource picks the system reply text for a display name. Tests swap in a
// fixed implementation so the generated text is deterministic.
type ReplySource interface {
	Pick(displayName string) string
}

// RandomReplySource selects uniformly among the templates.
type RandomReplySource struct{}

func (RandomReplySource) Pick(displayName string) string {
	tpl := ReplyTemplates[rand.Intn(len(ReplyTemplates))]
	return fmt.Sprintf(tpl, displayName)
}

// FixedReplySource always selects the template at Index.
type FixedReplySource struct {
	Index int
}

func (s FixedReplySource) Pick(displayName string) string {
	return fmt.Sprintf(ReplyTemplates[s.Index%len(ReplyTemplates)], displayName)
}
