package guide

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func scrivi(t *testing.T, dir, nome, contenuto string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, nome), []byte(contenuto), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadAll(t *testing.T) {
	dir := t.TempDir()
	scrivi(t, dir, "ferie.md", "---\nslug: ferie\ntitolo: Ferie\ncalcolatore: ferie\nordine: 2\n---\n# Ferie\n\nLe ferie **maturano** ogni mese.\n")
	scrivi(t, dir, "stipendio.md", "---\ntitolo: Stipendio\ncalcolatore: stipendio\nordine: 1\n---\nTesto.\n")
	scrivi(t, dir, "note.txt", "ignorato")

	if err := LoadAll(dir); err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	all := GetAll()
	if len(all) != 2 || all[0].Slug != "stipendio" || all[1].Slug != "ferie" {
		t.Fatalf("ordine o slug inattesi: %+v", all)
	}
	g := GetBySlug("ferie")
	if g == nil || !strings.Contains(g.HTMLContent, "<strong>maturano</strong>") {
		t.Errorf("markdown non convertito: %+v", g)
	}
	if GetByCalcolatore("stipendio") == nil {
		t.Error("guida del calcolatore stipendio mancante")
	}
	if GetBySlug("inesistente") != nil {
		t.Error("slug inesistente trovato")
	}
}

func TestLoadAll_FrontmatterErrato(t *testing.T) {
	dir := t.TempDir()
	scrivi(t, dir, "ok.md", "---\nslug: ok\ntitolo: Ok\n---\nciao\n")
	scrivi(t, dir, "rotta.md", "senza frontmatter")

	err := LoadAll(dir)
	if err == nil || !strings.Contains(err.Error(), "rotta.md") {
		t.Errorf("atteso errore su rotta.md, ottenuto %v", err)
	}
	if len(GetAll()) != 1 {
		t.Errorf("le guide valide devono essere caricate comunque: %d", len(GetAll()))
	}
}

func TestLoadAll_DirectoryMancante(t *testing.T) {
	if err := LoadAll(filepath.Join(t.TempDir(), "nessuna")); err == nil {
		t.Error("directory mancante accettata")
	}
}
