package main

import (
	"flag"
	"log/slog"
	"os"
	"path/filepath"
)

// Sample knowledge-base articles. Content is deterministic so repeated
// seeding produces identical data directories.
var kbDocs = map[string]string{
	"incident_502.md": `# Incident : erreur 502 sur le site

En cas d'erreur 502 signalée par un client :
1. Vérifier l'état du service sur la page de statut interne.
2. Vider le cache du navigateur et réessayer.
3. Si l'erreur persiste plus de 10 minutes, escalader à l'astreinte.

Référence : INC-2201.
`,
	"mots_de_passe.md": `# Réinitialisation de mot de passe

Pour réinitialiser un mot de passe oublié :
1. Ouvrir la page de connexion.
2. Cliquer sur « Mot de passe oublié ».
3. Suivre le lien de réinitialisation reçu par e-mail.

Le lien expire au bout de 30 minutes. Ne partagez jamais de mot de passe
en clair par e-mail.
`,
	"acces_comptes.md": `# Création et gestion des comptes

La création des comptes utilisateurs passe par l'espace administrateur :
1. Ouvrir l'onglet « Équipe ».
2. Saisir l'adresse e-mail du nouveau membre.
3. Choisir un rôle (lecture, édition, administration).

Les droits d'accès sont appliqués dans les 5 minutes.
`,
	"facturation.md": `# Facturation et exports

Les factures sont émises le premier jour ouvré du mois. Un export CSV de
l'historique est disponible depuis l'onglet « Facturation ».

Pour toute question sur un montant, indiquer le numéro de facture
(format #2024-0000) dans votre message.
`,
}

// Sample emails covering each ticket type and both file formats.
var mails = map[string]string{
	"incident_paiement.eml": "From: Alice Martin <alice@exemple.fr>\r\n" +
		"To: support@exemple.fr\r\n" +
		"Subject: [INCIDENT] Erreur 502 au paiement\r\n" +
		"Date: Mon, 12 May 2025 09:14:00 +0200\r\n" +
		"\r\n" +
		"Bonjour,\r\n" +
		"\r\n" +
		"Depuis ce matin le site est en panne : nous voyons une erreur 502\r\n" +
		"sur la page de paiement https://app.exemple.fr/paiement et plus\r\n" +
		"aucun client ne peut commander. C'est urgent, production bloquée.\r\n" +
		"\r\n" +
		"Alice\r\n",
	"demande_acces.txt": "From: Bruno Lefevre <bruno@exemple.fr>\n" +
		"Subject: [DEMANDE] Création de compte pour un nouveau collègue\n" +
		"\n" +
		"Bonjour,\n" +
		"\n" +
		"Pourriez-vous créer un accès pour notre nouvelle collègue ?\n" +
		"Merci d'activer les droits d'édition sur le projet AB-1234.\n" +
		"\n" +
		"Bruno\n",
	"question_export.txt": "From: claire@exemple.fr\n" +
		"Subject: Export CSV de la facturation\n" +
		"\n" +
		"Bonjour,\n" +
		"\n" +
		"Comment puis-je exporter l'historique de facturation au format CSV ?\n" +
		"Est-ce possible depuis l'interface ?\n" +
		"\n" +
		"Merci d'avance,\n" +
		"Claire\n",
	"mot_de_passe.txt": "From: David Morel <david@exemple.fr>\n" +
		"Subject: Mot de passe oublié\n" +
		"\n" +
		"Bonjour,\n" +
		"\n" +
		"J'ai oublié mon mot de passe et je n'arrive plus à me connecter.\n" +
		"Pouvez-vous m'aider ?\n" +
		"\n" +
		"David\n",
}

var destDir = flag.String("dest", "data", "destination data directory")

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
	flag.Parse()
}

func writeAll(dir string, files map[string]string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			return err
		}
	}
	return nil
}

func main() {
	kbDir := filepath.Join(*destDir, "kb")
	mailDir := filepath.Join(*destDir, "mails")

	if err := writeAll(kbDir, kbDocs); err != nil {
		panic(err)
	}
	if err := writeAll(mailDir, mails); err != nil {
		panic(err)
	}

	slog.Info("seeded sample data", "kbDir", kbDir, "docs", len(kbDocs), "mailDir", mailDir, "mails", len(mails))
	slog.Info("next steps", "index", "soutien -d "+*destDir+" index", "ingest", "soutien -d "+*destDir+" ingest "+mailDir)
}
