// Package exporter serializes converted products into an .xlsx workbook with
// per-marketplace column headers. The whole workbook is built in memory; each
// task exports a single row, so streaming isn't worth it.
package exporter

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/iamgjek/Shopee2Multi-sub000/internal/converter"
	"github.com/iamgjek/Shopee2Multi-sub000/internal/domain/conversion"
)

const sheetName = "Sheet1"

const columnWidth = 24

// Write builds the workbook for the platform and writes it to w.
func Write(w io.Writer, products []conversion.ConvertedProduct, platform converter.Platform) error {
	f, err := build(products, platform)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// WriteFile builds the workbook and saves it at path.
func WriteFile(path string, products []conversion.ConvertedProduct, platform converter.Platform) error {
	f, err := build(products, platform)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func build(products []conversion.ConvertedProduct, platform converter.Platform) (*excelize.File, error) {
	headers := converter.Headers(platform)

	f := excelize.NewFile()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"DDEBF7"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}

	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return nil, err
		}
	}

	lastCol, err := excelize.ColumnNumberToName(len(headers))
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(sheetName, "A1", lastCol+"1", headerStyle); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(sheetName, "A", lastCol, columnWidth); err != nil {
		return nil, err
	}

	for r, p := range products {
		for c, h := range headers {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheetName, cell, cellValue(p, h)); err != nil {
				return nil, err
			}
		}
	}

	return f, nil
}

// cellValue maps a header label to its extraction rule. Labels we don't know
// produce an empty cell.
func cellValue(p conversion.ConvertedProduct, header string) interface{} {
	switch header {
	case "商品名稱":
		return p.Title
	case "商品描述":
		return p.Description
	case "售價":
		return p.Price
	case "商品規格":
		return p.Specs.Flat
	case "規格名稱":
		return strings.Join(p.Specs.Keys, ",")
	case "規格選項":
		return specGroupsJSON(p.Specs)
	case "商品主圖":
		return imageAt(p.Images, 0)
	case "商品圖片2":
		return imageAt(p.Images, 1)
	case "商品圖片3":
		return imageAt(p.Images, 2)
	case "商品分類":
		return p.Category
	case "品牌":
		return p.Brand
	default:
		return ""
	}
}

func imageAt(images []string, i int) string {
	if i < len(images) {
		return images[i]
	}
	return ""
}

// specGroupsJSON renders the two-layer spec mapping as a JSON object with
// keys in first-seen order.
func specGroupsJSON(s conversion.SpecSet) string {
	if len(s.Keys) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteByte('{')
	for i, key := range s.Keys {
		if i > 0 {
			b.WriteByte(',')
		}
		k, _ := json.Marshal(key)
		v, _ := json.Marshal(s.Groups[key])
		b.Write(k)
		b.WriteByte(':')
		b.Write(v)
	}
	b.WriteByte('}')
	return b.String()
}
