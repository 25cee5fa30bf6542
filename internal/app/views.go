package app

import (
	"fmt"

	"termfolio/internal/colorgame"
	"termfolio/internal/render"
)

// Links is the home page link list.
var Links = []render.Link{
	{Title: "GitHub Page", URL: "https://github.com/scarlettmparker/"},
	{Title: "Guided Reader", URL: "https://reader.scarlettparker.co.uk/"},
	{Title: "Life Series", URL: "https://scarlettparker.co.uk/minecraft/"},
	{Title: "Spell Bee", URL: "https://scarlettparker.co.uk/spell/"},
}

const homeNote = "Home page under construction. While you're here, check out:"

var lifeIntro = []string{
	"Secret Life was a 7 week long Minecraft event hosted for students at the University of Exeter, running once a week with 30 active players a session.",
	"In Secret Life, players are assigned a task at the start of every session that they complete as discretely as possible.",
	"Across the 7 sessions, over 250 tasks were written and distributed. Tasks usually involve doing something social, which helps bring players together.",
}

var pluginInfo = []string{
	"Secret Life was made possible through a custom Minecraft plugin that was developed for the event.",
	"The Secret Life plugin was used to manage lives, distribute tasks, gather player data and house a variety of other custom features that can be found on the GitHub repository (github.com/scarlettmparker/Secret-Life).",
	"Developed in Java over the course of a few weeks, this plugin can be used on any 1.15+ Minecraft server that supports Spigot plugins.",
}

func (h *Hub) view(v *Visitor) render.View {
	switch v.Page {
	case PageColour:
		return colourView(v)
	case PageLife:
		return h.lifeView(v)
	default:
		return render.HomeView{
			Title:    "termfolio",
			Note:     homeNote,
			Items:    homeItems,
			Selected: v.homeSel,
			Links:    Links,
			User:     v.Name,
		}
	}
}

func colourView(v *Visitor) render.ColourView {
	g := v.game
	colors := g.Colors()
	swatches := make([]render.Swatch, len(colors))
	for i, c := range colors {
		r, gg, b := c.RGB255()
		swatches[i] = render.Swatch{Label: c.Hex(), Color: render.RGB(r, gg, b)}
	}
	r, gg, b := g.Target().RGB255()

	cv := render.ColourView{
		Target:   render.RGB(r, gg, b),
		Swatches: swatches,
		Selected: v.colourSel,
		Answer:   g.AnswerIndex(),
		Score:    g.Score(),
		Best:     max(g.Best(), v.best),
	}
	if o := g.Outcome(); o != colorgame.Pending {
		cv.Message = o.String()
		cv.Won = o == colorgame.Correct
		cv.Distance = g.Distance()
	}
	return cv
}

func (h *Hub) lifeView(v *Visitor) render.LifeView {
	lv := render.LifeView{
		Title:     "Secret Life",
		Subtitle:  "Tue 4 Jun - Tue 16 Jul",
		Focus:     v.focus,
		Query:     v.query,
		Searching: v.searching || v.pending,
		Variant:   string(v.source.Variant),
		Overlay:   v.overlay,
		Intro:     lifeIntro,
		MenuOpen:  v.menuOpen,
		Menu:      v.menu,
		Plugin:    pluginInfo,
		Large:     v.large,
		Stats:     h.stats(),
		Book:      v.book.Frame(),
		Enchanted: v.book.Enchanted(),
	}
	if v.character != nil {
		lv.Character = v.character
	}

	if g := h.deps.Gallery; g.Len() > 0 {
		i := v.image % g.Len()
		lv.Gallery = render.GalleryItem{Name: g.Names[i], Image: g.Images[i], Index: i, Count: g.Len()}
	} else {
		lv.Large = false
	}
	if n := len(h.deps.Tasks); n > 0 {
		i := v.task % n
		lv.Task = &render.TaskItem{Task: h.deps.Tasks[i], Index: i, Count: n}
	}
	return lv
}

func (h *Hub) stats() []string {
	return []string{
		"Sessions: 7",
		"Active players per session: 30",
		fmt.Sprintf("Tasks in the task base: %d", len(h.deps.Tasks)),
		fmt.Sprintf("Gallery images: %d", h.deps.Gallery.Len()),
	}
}
