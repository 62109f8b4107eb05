// Package render draws lookup results and prompts on the console.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/x/ansi"

	"github.com/BielosX/wombat/poke-lookup/src/pokeapi"
)

const (
	FormatTable = "table"
	FormatJson  = "json"
)

var (
	cyan    = lipgloss.Color("6")
	green   = lipgloss.Color("2")
	red     = lipgloss.Color("1")
	yellow  = lipgloss.Color("3")
	blue    = lipgloss.Color("4")
	magenta = lipgloss.Color("5")
	white   = lipgloss.Color("15")
)

// Summary is the display projection of a PokeAPI response.
type Summary struct {
	Name      string `json:"name"`
	Weight    int32  `json:"weight"`
	Height    int32  `json:"height"`
	Types     string `json:"types"`
	Abilities string `json:"abilities"`
	Url       string `json:"url"`
	Sprite    string `json:"sprite"`
}

// Summarize keeps the API order of types and abilities.
func Summarize(name, url string, pokemon *pokeapi.PokemonResponse) Summary {
	return Summary{
		Name:      name,
		Weight:    pokemon.Weight,
		Height:    pokemon.Height,
		Types:     strings.Join(pokemon.TypeNames(), ", "),
		Abilities: strings.Join(pokemon.AbilityNames(), ", "),
		Url:       url,
		Sprite:    pokemon.Sprites.FrontDefault,
	}
}

type Options struct {
	Format string
	Links  bool
}

type Renderer struct {
	out    io.Writer
	re     *lipgloss.Renderer
	format string
	links  bool
}

func New(out io.Writer, opts Options) *Renderer {
	format := opts.Format
	if format == "" {
		format = FormatTable
	}
	return &Renderer{
		out:    out,
		re:     lipgloss.NewRenderer(out),
		format: format,
		links:  opts.Links,
	}
}

func (r *Renderer) link(url string) string {
	if !r.links || url == "" {
		return url
	}
	return ansi.SetHyperlink(url) + url + ansi.ResetHyperlink()
}

func (r *Renderer) line(style lipgloss.Style, text string) {
	fmt.Fprintln(r.out, style.Render(text))
}

func (r *Renderer) Prompt(text string) {
	fmt.Fprintln(r.out)
	r.line(r.re.NewStyle().Bold(true).Foreground(cyan), text)
	fmt.Fprint(r.out, "> ")
}

func (r *Renderer) Question(text string) {
	fmt.Fprintln(r.out)
	r.line(r.re.NewStyle().Bold(true).Foreground(yellow), text)
	fmt.Fprint(r.out, "> ")
}

func (r *Renderer) Success(text string) {
	fmt.Fprintln(r.out)
	r.line(r.re.NewStyle().Bold(true).Foreground(green), text)
	fmt.Fprintln(r.out)
}

func (r *Renderer) Failure(text string) {
	r.line(r.re.NewStyle().Bold(true).Foreground(red), text)
}

func (r *Renderer) Farewell(text string) {
	fmt.Fprintln(r.out)
	r.line(r.re.NewStyle().Bold(true).Foreground(blue), text)
}

func (r *Renderer) Pokemon(s Summary) error {
	if r.format == FormatJson {
		enc := json.NewEncoder(r.out)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	}
	if _, err := fmt.Fprintln(r.out, r.Table(s)); err != nil {
		return err
	}
	_, err := fmt.Fprintln(r.out, r.Panel(s))
	return err
}

func (r *Renderer) Table(s Summary) string {
	name := strings.ToUpper(s.Name)
	title := r.re.NewStyle().Bold(true).Foreground(magenta).
		Render("Información básica de " + name)

	headerStyle := r.re.NewStyle().Bold(true).Padding(0, 1)
	keyStyle := r.re.NewStyle().Foreground(cyan).Padding(0, 1).Align(lipgloss.Right)
	valueStyle := r.re.NewStyle().Foreground(yellow).Padding(0, 1).Align(lipgloss.Left)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(r.re.NewStyle()).
		Headers("Atributo", "Valor").
		Row("Peso", fmt.Sprint(s.Weight)).
		Row("Altura", fmt.Sprint(s.Height)).
		Row("Tipo(s)", s.Types).
		Row("Habilidades", s.Abilities).
		Row("URL", r.link(s.Url)).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0:
				return keyStyle
			default:
				return valueStyle
			}
		})
	return lipgloss.JoinVertical(lipgloss.Left, title, t.Render())
}

// Panel draws a rounded box with the title set into its top border.
func (r *Renderer) Panel(s Summary) string {
	border := lipgloss.RoundedBorder()
	borderStyle := r.re.NewStyle().Foreground(blue)
	label := " " + r.re.NewStyle().Foreground(blue).Render("Imagen de ") +
		r.re.NewStyle().Foreground(blue).Bold(true).Render(strings.ToUpper(s.Name)) + " "

	body := r.re.NewStyle().Bold(true).Foreground(white).Render("Imagen disponible en:") +
		" " + r.link(s.Sprite)
	box := r.re.NewStyle().
		Border(border, false, true, true, true).
		BorderForeground(blue).
		Padding(0, 1)
	if minWidth := lipgloss.Width(label) + 1; lipgloss.Width(body)+2 < minWidth {
		box = box.Width(minWidth)
	}
	rendered := box.Render(body)

	fill := lipgloss.Width(rendered) - 3 - lipgloss.Width(label)
	if fill < 0 {
		fill = 0
	}
	top := borderStyle.Render(border.TopLeft+border.Top) + label +
		borderStyle.Render(strings.Repeat(border.Top, fill)+border.TopRight)
	return top + "\n" + rendered
}
