package main

import (
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// runWatch shows a live terminal view of the board, polling the source
// until q or Escape quits it.
func runWatch(source BoardSource, cfg Config) error {
	app := tview.NewApplication()

	var (
		mu       sync.Mutex
		board    Board
		exists   bool
		fetchErr error
	)

	boardBox := tview.NewBox().SetBorder(true).SetTitle(" chomping glass ")
	boardBox.SetDrawFunc(func(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
		mu.Lock()
		b, ok := board, exists
		mu.Unlock()

		glassStyle := tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorRed)
		openStyle := tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorGreen)
		eatenStyle := tcell.StyleDefault.Foreground(tcell.ColorGray)

		for row := 1; row <= rowCount; row++ {
			for col := 1; col <= colCount; col++ {
				// 2 screen cells per board cell for a square look
				cx := x + 2 + (col-1)*2
				cy := y + 1 + (row - 1)
				style := eatenStyle
				ch := '·'
				if ok && b.MoveIsOpen(row, col) {
					style = openStyle
					ch = ' '
					if row == poisonRow && col == poisonCol {
						style = glassStyle
					}
				}
				screen.SetContent(cx, cy, ch, nil, style)
				screen.SetContent(cx+1, cy, ch, nil, style)
			}
		}
		return x, y, width, height
	})

	status := tview.NewTextView().SetDynamicColors(true)
	refresh := func() {
		mu.Lock()
		ok, err := exists, fetchErr
		glassOnly := exists && board.IsGlassOnly()
		mu.Unlock()
		switch {
		case err != nil:
			status.SetText(fmt.Sprintf("[red]fetch failed:[-] %v", err))
		case !ok:
			status.SetText("no game - waiting for the first move (q to quit)")
		case glassOnly:
			status.SetText("[red]only glass remains - game over[-] (q to quit)")
		default:
			status.SetText("game running (q to quit)")
		}
	}

	flex := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(boardBox, rowCount+2, 0, true).
		AddItem(status, 0, 1, false)

	app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEscape || event.Rune() == 'q' {
			app.Stop()
			return nil
		}
		return event
	})

	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(time.Duration(cfg.WatchRefreshMs) * time.Millisecond)
		defer ticker.Stop()
		for {
			b, ok, err := source.FetchBoard()
			mu.Lock()
			board, exists, fetchErr = b, ok, err
			mu.Unlock()
			app.QueueUpdateDraw(refresh)
			select {
			case <-done:
				return
			case <-ticker.C:
			}
		}
	}()

	err := app.SetRoot(flex, true).Run()
	close(done)
	return err
}
