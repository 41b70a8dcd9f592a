package biome

import "voxelfield/internal/noise"

// ID enumerates the known biome kinds.
type ID int

const (
	Plains ID = iota
	Forest
	Desert
	Mountains
	// Ocean is part of the classification domain but the active rule set
	// never selects it. Terrain height logic still branches on it, so the
	// constant stays.
	Ocean
)

// Biome is an immutable classification result for a horizontal world
// position. Temperature and Humidity carry the sampled climate values in
// [0, 1]; the remaining fields are static per-kind tuning consumed by the
// terrain generator.
type Biome struct {
	ID   ID
	Name string

	Temperature float64
	Humidity    float64

	// HeightAdjust is added to the noise-derived surface height.
	HeightAdjust int
	// TreeChance is the per-column probability of placing a tree.
	TreeChance float64
	// LeafRadius bounds the Manhattan distance of canopy blocks from the
	// trunk axis; LeafSpread the vertical extent above the trunk top.
	LeafRadius int
	LeafSpread int
}

var kinds = map[ID]Biome{
	Plains: {
		ID:         Plains,
		Name:       "plains",
		TreeChance: 0.01,
		LeafRadius: 2,
		LeafSpread: 2,
	},
	Forest: {
		ID:         Forest,
		Name:       "forest",
		TreeChance: 0.08,
		LeafRadius: 3,
		LeafSpread: 3,
	},
	Desert: {
		ID:           Desert,
		Name:         "desert",
		HeightAdjust: -5,
		TreeChance:   0,
		LeafRadius:   2,
		LeafSpread:   2,
	},
	Mountains: {
		ID:           Mountains,
		Name:         "mountains",
		HeightAdjust: 20,
		TreeChance:   0.005,
		LeafRadius:   2,
		LeafSpread:   2,
	},
	Ocean: {
		ID:         Ocean,
		Name:       "ocean",
		TreeChance: 0,
		LeafRadius: 2,
		LeafSpread: 2,
	},
}

// Lookup returns the static descriptor for a biome kind.
func Lookup(id ID) Biome {
	return kinds[id]
}

const (
	temperatureScale = 0.004
	humidityScale    = 0.006
	// humidityOffset decorrelates the humidity sample from temperature by
	// shifting it far from the temperature sampling window.
	humidityOffset = 512.0
)

// Classifier maps horizontal world coordinates to biomes using two
// independent low-frequency noise fields. Classification is a pure function
// of the input coordinates and the fixed seed.
type Classifier struct {
	temperature *noise.Field
	humidity    *noise.Field
}

func NewClassifier(seed int64) *Classifier {
	return &Classifier{
		temperature: noise.NewField(seed),
		humidity:    noise.NewField(seed + 1),
	}
}

// Classify samples temperature and humidity at (worldX, worldZ) and applies
// the ordered classification rules, first match winning.
func (c *Classifier) Classify(worldX, worldZ int) Biome {
	tx := float64(worldX) * temperatureScale
	tz := float64(worldZ) * temperatureScale
	hx := (float64(worldX) + humidityOffset) * humidityScale
	hz := (float64(worldZ) + humidityOffset) * humidityScale

	temperature := clamp01((c.temperature.Fractal2D(tx, tz, 2, 0.5) + 1) / 2)
	humidity := clamp01((c.humidity.Fractal2D(hx, hz, 2, 0.5) + 1) / 2)

	b := Lookup(classify(temperature, humidity))
	b.Temperature = temperature
	b.Humidity = humidity
	return b
}

// classify applies the rule ladder on remapped climate values.
func classify(temperature, humidity float64) ID {
	switch {
	case temperature > 0.8 && humidity < 0.3:
		return Desert
	case temperature < 0.4:
		return Mountains
	case humidity > 0.7 && temperature > 0.5:
		return Forest
	default:
		return Plains
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
