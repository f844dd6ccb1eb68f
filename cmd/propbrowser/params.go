package main

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/Faultbox/propforge/internal/assets"
)

// paramGroup is the params sharing a folder, in declaration order.
type paramGroup struct {
	folder string
	params []assets.Param
}

func groupParams(params []assets.Param) []paramGroup {
	var groups []paramGroup
	index := map[string]int{}
	for _, p := range params {
		i, ok := index[p.Folder]
		if !ok {
			i = len(groups)
			index[p.Folder] = i
			groups = append(groups, paramGroup{folder: p.Folder})
		}
		groups[i].params = append(groups[i].params, p)
	}
	return groups
}

// sliderFormat is the printf format for a param's slider.
func sliderFormat(p assets.Param) string {
	suffix := ""
	switch p.Unit {
	case assets.Meter:
		suffix = " m"
	case assets.Centimeter:
		suffix = " cm"
	case assets.Millimeter:
		suffix = " mm"
	case assets.Degree:
		suffix = " deg"
	case assets.Percent:
		suffix = " %%"
	}
	prec := p.Prec
	if prec == 0 && p.Unit != assets.Count {
		prec = 2
	}
	return fmt.Sprintf("%%.%df%s", prec, suffix)
}

func (app *App) renderParams() {
	k := app.state.kind
	if k == nil {
		imgui.TextDisabled("Select an asset")
		return
	}
	imgui.Text(k.DisplayName())
	imgui.Separator()

	for _, g := range groupParams(k.Params) {
		title := g.folder
		if title == "" {
			title = "general"
		}
		if !imgui.TreeNodeExStrV(title, imgui.TreeNodeFlagsDefaultOpen) {
			continue
		}
		for _, p := range g.params {
			app.renderParam(p)
		}
		imgui.TreePop()
	}
}

func (app *App) renderParam(p assets.Param) {
	label := p.Label() + "##" + p.Key
	v := app.state.values

	switch p.Unit {
	case assets.Flag:
		b := v.Bool(p.Key)
		if imgui.Checkbox(label, &b) {
			x := 0.0
			if b {
				x = 1
			}
			app.state.set(p.Key, x)
		}
	case assets.Count:
		n := int32(v.Int(p.Key))
		if imgui.SliderIntV(label, &n, int32(p.Min), int32(p.Max), "%d", imgui.SliderFlagsNone) {
			app.state.set(p.Key, float64(n))
		}
	default:
		f := float32(v.Float(p.Key))
		flags := imgui.SliderFlagsNone
		if p.Exp {
			flags = imgui.SliderFlagsLogarithmic
		}
		if imgui.SliderFloatV(label, &f, float32(p.Min), float32(p.Max), sliderFormat(p), flags) {
			app.state.set(p.Key, float64(f))
		}
	}
}
