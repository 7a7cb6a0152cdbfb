package scenes

import (
	"github.com/kent12t/SAF-AR/pkg/show"
)

// Scene is a type alias for show.Scene to maintain backward compatibility.
// All scene implementations should implement the show.Scene interface.
type Scene = show.Scene
