package lexical

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScore(t *testing.T) {
	t.Run("accented and conjugated forms overlap", func(t *testing.T) {
		assert.Greater(t, Score("créer un accès", "Création d'accès utilisateur"), 0)
	})

	t.Run("counts distinct stems only once", func(t *testing.T) {
		// "erreur" repeated in the text still counts once.
		got := Score("erreur connexion", "erreur erreur erreur")
		assert.Equal(t, 1, got)
	})

	t.Run("short tokens are ignored", func(t *testing.T) {
		assert.Equal(t, 0, Score("un de la", "un de la"))
	})

	t.Run("no overlap", func(t *testing.T) {
		assert.Equal(t, 0, Score("facturation mensuelle", "certificat TLS expiré"))
	})

	t.Run("empty query", func(t *testing.T) {
		assert.Equal(t, 0, Score("", "n'importe quoi"))
	})

	t.Run("numbers count as tokens", func(t *testing.T) {
		assert.Greater(t, Score("erreur 502 sur la connexion", "Une erreur 502 Bad Gateway"), 1)
	})

	t.Run("symmetric", func(t *testing.T) {
		a := "réinitialiser mot de passe"
		b := "réinitialisation du mot de passe oublié"
		assert.Equal(t, Score(a, b), Score(b, a))
	})
}
