// Command ssuplay previews a shader effect prefab in a window.
package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	effect := flag.String("effect", "frozen_in.yaml", "effect prefab in prefabs/ (embedded copy used when missing)")
	imagePath := flag.String("image", "", "sprite image to shade (a generated sprite when empty)")
	watch := flag.Bool("watch", true, "reload the effect when prefab or script files change")
	debug := flag.Bool("debug", false, "log animator writes and property changes")
	scale := flag.Float64("scale", 3, "sprite scale")
	flag.Parse()

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(screenWidth*2, screenHeight*2)
	ebiten.SetWindowTitle("ssuplay")

	game, err := NewGame(Options{
		Effect:    *effect,
		ImagePath: *imagePath,
		Watch:     *watch,
		Debug:     *debug,
		Scale:     *scale,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
