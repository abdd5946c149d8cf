package hybrid

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/Samy8769/mail-classifier-3/internal/heuristic"
)

// contextLimit bounds the email excerpt embedded in an arbitration prompt.
const contextLimit = 2000

// buildPrompt renders the arbitration prompt: the axis under decision, its
// ranked candidates, a bounded excerpt of the email, and the axes already
// resolved upstream. The instructions pin the arbiter to the candidate
// list and the AUCUN sentinel.
func buildPrompt(hr heuristic.Result, emailContext string, resolved []Resolved) string {
	var candidates strings.Builder
	for _, c := range hr.Candidates {
		fmt.Fprintf(&candidates, "  - %s  (score=%.1f)\n", c.Label, c.Score)
	}
	candidatesStr := strings.TrimRight(candidates.String(), "\n")
	if candidatesStr == "" {
		candidatesStr = "  (aucun candidat heuristique)"
	}

	var other strings.Builder
	for _, r := range resolved {
		if r.Value != "" {
			fmt.Fprintf(&other, "  %s: %s\n", r.Axis, r.Value)
		}
	}
	otherStr := strings.TrimRight(other.String(), "\n")
	if otherStr == "" {
		otherStr = "  (aucun)"
	}

	return fmt.Sprintf(`Tu es un classifieur d'emails de l'industrie spatiale.

Axe : %s  (préfixe %s)

Candidats heuristiques (ordre par score décroissant) :
%s

Contexte de l'email :
%s

Axes déjà classifiés :
%s

Règle absolue :
  • Choisis UNE SEULE valeur parmi les candidats listés ci-dessus.
  • Si aucun candidat ne convient, réponds exactement : AUCUN
  • N'invente jamais de tag hors liste.

Réponds uniquement avec le tag choisi (ex : T_Commande) ou AUCUN.`,
		hr.Axis, hr.Prefix, candidatesStr, truncate(emailContext, contextLimit), otherStr)
}

// truncate cuts s to at most max bytes without splitting a rune.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max]
}
