package sim

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// FarBandModel tunes the far-band pull. The two shipped variants of the drone
// update disagree on both numbers, so they are kept as named presets until the
// tuning is settled.
type FarBandModel struct {
	// JerkScale multiplies Jerk before it is combined with distance and dt.
	JerkScale float64
	// AlignBlend is how strongly velocity is rescaled by its alignment with
	// the pull direction. 0 leaves velocity alone, 1 replaces the scale with
	// the raw dot product.
	AlignBlend float64
}

var (
	// FarBandBlended divides jerk by 100 and blends the alignment term at 20%.
	FarBandBlended = FarBandModel{JerkScale: 0.01, AlignBlend: 0.2}
	// FarBandAligned uses the undivided jerk and scales velocity by the
	// alignment dot product outright.
	FarBandAligned = FarBandModel{JerkScale: 1, AlignBlend: 1}
)

// farBandModels maps config names to presets.
var farBandModels = map[string]FarBandModel{
	"blended": FarBandBlended,
	"aligned": FarBandAligned,
}

// PlayerConfig holds the player ship constants.
type PlayerConfig struct {
	X            float64 `toml:"x"`
	Y            float64 `toml:"y"`
	Size         float64 `toml:"size"`
	Acceleration float64 `toml:"acceleration"`
	MaxVelocity  float64 `toml:"max_velocity"`
	Dampening    float64 `toml:"dampening"`
}

// DroneConfig holds the per-drone constants used for the initial roster and
// for drones spawned later without explicit values.
type DroneConfig struct {
	Count              int     `toml:"count"`
	Formation          string  `toml:"formation"`
	Spacing            float64 `toml:"spacing"`
	Jerk               float64 `toml:"jerk"`
	MaxAccel           float64 `toml:"max_accel"`
	MaxVelocity        float64 `toml:"max_velocity"`
	Dampening          float64 `toml:"dampening"`
	Size               float64 `toml:"size"`
	PlayerMinDistance  float64 `toml:"player_min_distance"`
	PlayerMaxDistance  float64 `toml:"player_max_distance"`
	DetectRange        float64 `toml:"detect_range"`
	ShotCooldownFrames int     `toml:"shot_cooldown_frames"`
	FacingBlend        float64 `toml:"facing_blend"`
	FarBand            string  `toml:"far_band"`
}

// EnemyConfig describes the initial enemy line.
type EnemyConfig struct {
	Count   int     `toml:"count"`
	Size    float64 `toml:"size"`
	OriginX float64 `toml:"origin_x"`
	OriginY float64 `toml:"origin_y"`
	Spacing float64 `toml:"spacing"`
}

// SeparationConfig tunes the drone-to-drone nudge.
type SeparationConfig struct {
	Padding  float64 `toml:"padding"`
	Strength float64 `toml:"strength"`
}

// ScreenConfig is read by the hosts only.
type ScreenConfig struct {
	Width      int `toml:"width"`
	Height     int `toml:"height"`
	LogoFrames int `toml:"logo_frames"`
}

// Config is the full set of tunables.
type Config struct {
	MaxDrones  int              `toml:"max_drones"`
	MaxEnemies int              `toml:"max_enemies"`
	Player     PlayerConfig     `toml:"player"`
	Drone      DroneConfig      `toml:"drone"`
	Enemy      EnemyConfig      `toml:"enemy"`
	Separation SeparationConfig `toml:"separation"`
	Screen     ScreenConfig     `toml:"screen"`
}

// DefaultConfig returns the constants the game ships with.
func DefaultConfig() Config {
	return Config{
		MaxDrones:  10,
		MaxEnemies: 100,
		Player: PlayerConfig{
			X:            384,
			Y:            400,
			Size:         32,
			Acceleration: 2500,
			MaxVelocity:  650,
			Dampening:    0.90,
		},
		Drone: DroneConfig{
			Count:              2,
			Formation:          FormationEchelon.String(),
			Spacing:            20,
			Jerk:               5000,
			MaxAccel:           2000,
			MaxVelocity:        700,
			Dampening:          0.90,
			Size:               20,
			PlayerMinDistance:  40,
			PlayerMaxDistance:  80,
			DetectRange:        100,
			ShotCooldownFrames: 60,
			FacingBlend:        0.1,
			FarBand:            "blended",
		},
		Enemy: EnemyConfig{
			Count:   10,
			Size:    16,
			OriginX: 200,
			OriginY: 200,
			Spacing: 40,
		},
		Separation: SeparationConfig{
			Padding:  4,
			Strength: 30,
		},
		Screen: ScreenConfig{
			Width:      800,
			Height:     450,
			LogoFrames: 120,
		},
	}
}

// LoadConfig reads a TOML file on top of DefaultConfig. Keys absent from the
// file keep their defaults; unknown keys are an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("load config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, fmt.Errorf("load config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// ResolveConfig loads path, or the defaults when path is empty, applies a
// non-empty far-band override, and validates the result.
func ResolveConfig(path, farBand string) (Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		var err error
		if cfg, err = LoadConfig(path); err != nil {
			return cfg, err
		}
	}
	if farBand != "" {
		cfg.Drone.FarBand = farBand
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// FarBandModel resolves the configured far-band preset.
func (c DroneConfig) FarBandModel() (FarBandModel, error) {
	m, ok := farBandModels[c.FarBand]
	if !ok {
		return FarBandModel{}, fmt.Errorf("drone.far_band: unknown variant %q (want blended or aligned)", c.FarBand)
	}
	return m, nil
}

// Validate reports every out-of-range field at once.
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.MaxDrones > 0, "max_drones: must be > 0, got %d", c.MaxDrones)
	check(c.MaxEnemies > 0, "max_enemies: must be > 0, got %d", c.MaxEnemies)

	p := c.Player
	check(p.Size > 0, "player.size: must be > 0, got %g", p.Size)
	check(p.Acceleration > 0, "player.acceleration: must be > 0, got %g", p.Acceleration)
	check(p.MaxVelocity > 0, "player.max_velocity: must be > 0, got %g", p.MaxVelocity)
	check(p.Dampening >= 0 && p.Dampening < 1, "player.dampening: must be in [0,1), got %g", p.Dampening)

	d := c.Drone
	check(d.Count >= 0 && d.Count <= c.MaxDrones, "drone.count: must be in [0,%d], got %d", c.MaxDrones, d.Count)
	check(d.Jerk >= 0, "drone.jerk: must be >= 0, got %g", d.Jerk)
	check(d.MaxAccel > 0, "drone.max_accel: must be > 0, got %g", d.MaxAccel)
	check(d.MaxVelocity > 0, "drone.max_velocity: must be > 0, got %g", d.MaxVelocity)
	check(d.Dampening >= 0 && d.Dampening < 1, "drone.dampening: must be in [0,1), got %g", d.Dampening)
	check(d.Size > 0, "drone.size: must be > 0, got %g", d.Size)
	check(d.PlayerMinDistance >= 0, "drone.player_min_distance: must be >= 0, got %g", d.PlayerMinDistance)
	check(d.PlayerMinDistance < d.PlayerMaxDistance,
		"drone.player_min_distance (%g) must be below drone.player_max_distance (%g)", d.PlayerMinDistance, d.PlayerMaxDistance)
	check(d.DetectRange >= 0, "drone.detect_range: must be >= 0, got %g", d.DetectRange)
	check(d.ShotCooldownFrames >= 0, "drone.shot_cooldown_frames: must be >= 0, got %d", d.ShotCooldownFrames)
	check(d.FacingBlend >= 0 && d.FacingBlend <= 1, "drone.facing_blend: must be in [0,1], got %g", d.FacingBlend)
	if _, err := d.FarBandModel(); err != nil {
		errs = append(errs, err)
	}
	if _, err := ParseFormation(d.Formation); err != nil {
		errs = append(errs, err)
	}

	e := c.Enemy
	check(e.Count >= 0 && e.Count <= c.MaxEnemies, "enemy.count: must be in [0,%d], got %d", c.MaxEnemies, e.Count)
	check(e.Size > 0, "enemy.size: must be > 0, got %g", e.Size)

	check(c.Separation.Padding >= 0, "separation.padding: must be >= 0, got %g", c.Separation.Padding)
	check(c.Separation.Strength >= 0, "separation.strength: must be >= 0, got %g", c.Separation.Strength)

	check(c.Screen.Width > 0 && c.Screen.Height > 0, "screen: size must be positive, got %dx%d", c.Screen.Width, c.Screen.Height)
	check(c.Screen.LogoFrames >= 0, "screen.logo_frames: must be >= 0, got %d", c.Screen.LogoFrames)

	return errors.Join(errs...)
}
