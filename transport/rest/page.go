package rest

import (
	"html/template"
	"io"
	"strings"

	"github.com/rocketscienceinc/tictactoe/internal/tictactoe"
)

var pageTemplate = template.Must(template.New("page").Funcs(template.FuncMap{
	"cellClass": cellClass,
}).Parse(pageHTML))

type pageCell struct {
	Index int
	tictactoe.CellView
}

type pageData struct {
	Cells []pageCell
	View  tictactoe.View
}

func renderPage(w io.Writer, view tictactoe.View) error {
	data := pageData{View: view}
	for i, cell := range view.Cells {
		data.Cells = append(data.Cells, pageCell{Index: i, CellView: cell})
	}

	return pageTemplate.Execute(w, data)
}

// cellClass mirrors the per-cell view flags as CSS classes.
func cellClass(cell tictactoe.CellView) string {
	classes := []string{"cell"}
	if cell.Mark != "" {
		classes = append(classes, cell.Mark)
	}

	if cell.Highlighted {
		classes = append(classes, "winning")
	}

	if cell.WinningPlayerMark {
		classes = append(classes, "winning-player")
	}

	return strings.Join(classes, " ")
}

const pageHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Tic Tac Toe</title>
<style>
body { font-family: sans-serif; display: flex; flex-direction: column; align-items: center; }
.board { display: grid; grid-template-columns: repeat(3, 100px); gap: 4px; }
.board form { margin: 0; }
.cell { width: 100px; height: 100px; font-size: 48px; border: 1px solid #444; background: #fff; }
.cell.X { color: #c0392b; }
.cell.O { color: #2980b9; }
.cell.winning { background: #f9e79f; }
.cell.winning-player { font-weight: bold; }
.hidden { display: none; }
</style>
</head>
<body>
<h1>Tic Tac Toe</h1>
<div class="board">
{{- range .Cells}}
<form method="post" action="/cells/{{.Index}}">
<button type="submit" class="{{cellClass .CellView}}" data-cell="{{.Index}}"{{if not $.View.InputEnabled}} disabled{{end}}>{{.Mark}}</button>
</form>
{{- end}}
</div>
<p id="status">{{.View.Status}}</p>
<form method="post" action="/restart">
<button type="submit" id="restart"{{if not .View.RestartVisible}} class="hidden"{{end}}>Restart</button>
</form>
</body>
</html>
`
