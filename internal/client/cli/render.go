package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/dmitrijs2005/pokestore/internal/models"
)

func typeLabel(t1, t2 string) string {
	if t2 == "" {
		return t1
	}
	return t1 + "/" + t2
}

func (a *App) renderCreatures(recs []models.CreatureRecord) {
	if len(recs) == 0 {
		fmt.Fprintln(a.out, "Nothing found")
		return
	}
	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tBOX\tDEX\tSPECIES\tNICKNAME\tTYPE\tLEVEL\tNATURE")
	for _, r := range recs {
		fmt.Fprintf(w, "%d\t%d\t%d\t%s\t%s\t%s\t%d\t%s\n",
			r.ID, r.BoxNumber, r.DexNumber, r.SpeciesName, r.Nickname,
			typeLabel(r.Type1, r.Type2), r.Level, r.Nature)
	}
	w.Flush()
}

func (a *App) renderHacked(flagged []models.HackedCreature) {
	if len(flagged) == 0 {
		fmt.Fprintln(a.out, "No hacked creatures on record")
		return
	}
	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tOWNER\tDEX\tSPECIES\tNICKNAME\tLEVEL")
	for _, h := range flagged {
		fmt.Fprintf(w, "%d\t%s\t%d\t%s\t%s\t%d\n",
			h.CreatureID, h.OwnerName, h.DexNumber, h.SpeciesName, h.Nickname, h.Level)
	}
	w.Flush()
}

func (a *App) renderCounts(counts []models.UserCount) {
	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "USER\tCREATURES")
	for _, c := range counts {
		fmt.Fprintf(w, "%s\t%d\n", c.Username, c.Count)
	}
	w.Flush()
}
