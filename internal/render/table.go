package render

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fogleman/gg"
	"go.uber.org/multierr"
	"golang.org/x/image/font"

	"github.com/tuanzi-labs/ordersheet-backend/pkg/config"
	pkgerrors "github.com/tuanzi-labs/ordersheet-backend/pkg/errors"
	"github.com/tuanzi-labs/ordersheet-backend/pkg/logger"
	"github.com/tuanzi-labs/ordersheet-backend/pkg/metrics"
)

const (
	colorBackground   = "#ffffff"
	colorHeaderFill   = "#f0f0f0"
	colorSummaryFill  = "#fafafa"
	colorGrid         = "#cccccc"
	colorSummaryLabel = "#003366"
	colorText         = "#000000"

	cellPadding = 8.0
)

// Row is one data row: the six cell strings plus the row's raw image bytes.
type Row struct {
	Cells []string
	Image []byte
}

// SummaryRow is one trailing summary line rendered under the data rows.
type SummaryRow struct {
	Label string
	Value string
}

// Input carries everything one render needs. It holds no references back
// into session state, so building it and drawing it are separate steps.
type Input struct {
	Lang    string
	Columns []Column
	Rows    []Row
	Summary []SummaryRow
}

// Result is the encoded table image plus any non-fatal warnings raised
// while producing it.
type Result struct {
	PNG      []byte
	Warnings []string
}

// Renderer rasterizes order sheets into PNG tables. Output is deterministic
// for identical input and configuration.
type Renderer struct {
	cfg     config.RenderConfig
	logg    *logger.Logger
	metrics *metrics.RenderMetrics

	fontOnce     sync.Once
	fontWarnOnce sync.Once
	regular      font.Face
	bold         font.Face
	fontErr      error
	fontWarning  string
}

func New(cfg config.RenderConfig, logg *logger.Logger, m *metrics.RenderMetrics) *Renderer {
	return &Renderer{cfg: cfg, logg: logg, metrics: m}
}

// Render draws the header row, one row per line item and the trailing
// summary rows, then overlays row thumbnails. A thumbnail whose bytes fail
// to decode is skipped and reported as a warning; the table itself always
// completes.
func (r *Renderer) Render(ctx context.Context, in Input) (*Result, error) {
	start := time.Now()

	regular, bold, err := r.faces()
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load fonts")
	}
	if r.fontWarning != "" {
		r.fontWarnOnce.Do(func() {
			if r.logg != nil {
				r.logg.Warn(ctx, r.fontWarning)
			}
		})
	}

	margin := float64(r.cfg.Margin)
	rowH := float64(r.cfg.RowHeight)
	rowCount := 1 + len(in.Rows) + len(in.Summary)

	dc := gg.NewContext(
		r.cfg.TableWidth+2*r.cfg.Margin,
		r.cfg.RowHeight*rowCount+2*r.cfg.Margin,
	)
	dc.SetHexColor(colorBackground)
	dc.Clear()
	dc.SetLineWidth(1)

	widths := columnWidths(in.Columns, float64(r.cfg.TableWidth))
	summaryStart := 1 + len(in.Rows)

	for rowIdx := 0; rowIdx < rowCount; rowIdx++ {
		y := margin + float64(rowIdx)*rowH
		x := margin
		for colIdx, col := range in.Columns {
			c := styleCell(in, rowIdx, colIdx, summaryStart)
			c.x, c.y, c.w, c.h = x, y, widths[colIdx], rowH
			if c.anchor == "" {
				c.anchor = col.Anchor
			}
			drawCell(dc, c, regular, bold)
			x += widths[colIdx]
		}
	}

	var decodeErr error
	imageColX := margin + widths[0] + widths[1]/2
	for i, row := range in.Rows {
		if len(row.Image) == 0 {
			continue
		}
		thumb, err := thumbnail(row.Image, r.cfg.ThumbnailBox)
		if err != nil {
			decodeErr = multierr.Append(decodeErr, fmt.Errorf("row %d: %w", i+1, err))
			r.metrics.IncThumbnailFailure(in.Lang)
			continue
		}
		cy := margin + float64(1+i)*rowH + rowH/2
		dc.DrawImageAnchored(thumb, int(imageColX), int(cy), 0.5, 0.5)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode table image")
	}

	var warnings []string
	if r.fontWarning != "" {
		warnings = append(warnings, r.fontWarning)
	}
	for _, e := range multierr.Errors(decodeErr) {
		warnings = append(warnings, e.Error())
		if r.logg != nil {
			r.logg.Warn(ctx, "thumbnail skipped: "+e.Error())
		}
	}

	r.metrics.IncRender(in.Lang)
	r.metrics.ObserveDuration(in.Lang, time.Since(start))

	return &Result{PNG: buf.Bytes(), Warnings: warnings}, nil
}

type cell struct {
	x, y, w, h float64
	text       string
	fill       string
	border     string
	textColor  string
	emphasized bool
	anchor     Anchor
}

// styleCell applies the table's styling rules: gray bold header, plain data
// cells, near-white summary rows whose first four cells hide both border and
// text, a right-aligned colored summary label and a centered bold value.
func styleCell(in Input, rowIdx, colIdx, summaryStart int) cell {
	switch {
	case rowIdx == 0:
		return cell{
			text:       in.Columns[colIdx].Title,
			fill:       colorHeaderFill,
			border:     colorGrid,
			textColor:  colorText,
			emphasized: true,
		}
	case rowIdx >= summaryStart:
		summary := in.Summary[rowIdx-summaryStart]
		switch {
		case colIdx < 4:
			return cell{fill: colorSummaryFill, border: colorSummaryFill}
		case colIdx == 4:
			return cell{
				text:       summary.Label,
				fill:       colorSummaryFill,
				border:     colorSummaryFill,
				textColor:  colorSummaryLabel,
				emphasized: true,
				anchor:     AnchorEnd,
			}
		default:
			return cell{
				text:       summary.Value,
				fill:       colorSummaryFill,
				border:     colorGrid,
				textColor:  colorText,
				emphasized: true,
				anchor:     AnchorCenter,
			}
		}
	default:
		row := in.Rows[rowIdx-1]
		text := ""
		if colIdx < len(row.Cells) {
			text = row.Cells[colIdx]
		}
		return cell{
			text:      text,
			fill:      colorBackground,
			border:    colorGrid,
			textColor: colorText,
		}
	}
}

func drawCell(dc *gg.Context, c cell, regular, bold font.Face) {
	dc.DrawRectangle(c.x, c.y, c.w, c.h)
	dc.SetHexColor(c.fill)
	dc.FillPreserve()
	dc.SetHexColor(c.border)
	dc.Stroke()

	if c.text == "" {
		return
	}
	if c.emphasized {
		dc.SetFontFace(bold)
	} else {
		dc.SetFontFace(regular)
	}
	dc.SetHexColor(c.textColor)
	switch c.anchor {
	case AnchorStart:
		dc.DrawStringAnchored(c.text, c.x+cellPadding, c.y+c.h/2, 0, 0.5)
	case AnchorEnd:
		dc.DrawStringAnchored(c.text, c.x+c.w-cellPadding, c.y+c.h/2, 1, 0.5)
	default:
		dc.DrawStringAnchored(c.text, c.x+c.w/2, c.y+c.h/2, 0.5, 0.5)
	}
}
