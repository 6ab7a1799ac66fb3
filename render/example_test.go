// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render_test

import (
	"fmt"

	"github.com/gogpu/psykit/geometry"
	"github.com/gogpu/psykit/render"
	"github.com/gogpu/psykit/scene"
)

func ExampleNew() {
	r, err := render.New(render.BackendSoftware, render.Options{})
	if err != nil {
		fmt.Println(err)
		return
	}
	defer r.Close()

	s := r.CreateScene(32, 32)
	s.SetBackground(scene.Gray(0.5))
	s.FillShape(geometry.Circle{CX: 16, CY: 16, R: 8}, scene.Solid{Color: scene.Gray(1)})

	target := render.NewImageTarget(32, 32)
	if err := r.RenderToTexture(target, s); err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(target.Image().RGBAAt(16, 16), target.Image().RGBAAt(1, 1))
	// Output: {255 255 255 255} {128 128 128 255}
}
