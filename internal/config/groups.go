package config

// HumanAnimationGroup lists the clips the humanoid model is expected to provide.
// Slot positions are fixed; gameplay code addresses clips by slot.
var HumanAnimationGroup = []string{
	"idle",        // 0
	"idle_crouch", // 1
	"walk",        // 2
	"walk_crouch", // 3
	"walk_back",   // 4
	"run",         // 5
	"run_back",    // 6
	"swim",        // 7
	"jump",        // 8
	"jump_back",   // 9
	"land",        // 10
	"land_back",   // 11
	"attack",      // 12
	"attack_alt",  // 13
	"pain",        // 14
	"death",       // 15
}

// AlienAnimationGroup lists the clips the non-humanoid model is expected to provide.
// Aliens have no crouch or swim clips.
var AlienAnimationGroup = []string{
	"idle",          // 0
	"walk",          // 1
	"walk_back",     // 2
	"run",           // 3
	"run_back",      // 4
	"jump",          // 5
	"jump_back",     // 6
	"land",          // 7
	"attack",        // 8
	"attack_alt",    // 9
	"attack_pounce", // 10
	"pain",          // 11
	"death",         // 12
}
