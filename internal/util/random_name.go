package util

import (
	"fmt"
	"math/rand"
	"time"
)

var adjectives = []string{
	"Fast", "Slow", "Quick", "Sly", "Lucky", "Grumpy", "Bluffing", "Gracious", "Happy", "Funny",
	"Red", "Blue", "Green", "Orange", "Purple", "Fuzzy", "Smiling", "Tall", "Grand", "Ultimate",
	"Sneaky", "Brave", "Loud", "Quiet", "Crafty", "Patient", "Bold",
}

var animals = []string{
	"Capivara", "Tatu", "Onça", "Tucano", "Arara", "Jacaré", "Boto", "Quati", "Sagui", "Tamanduá",
	"Lobo-guará", "Anta", "Macaco", "Gambá", "Preguiça", "Ema", "Seriema", "Jabuti",
}

var random = rand.New(rand.NewSource(time.Now().UnixNano())) // nolint:gosec

// GetRandomName returns a random name by combining an adjective with an animal
func GetRandomName() string {
	adjectivesIndex := random.Intn(len(adjectives))
	animalsIndex := random.Intn(len(animals))

	return fmt.Sprintf("%s %s", adjectives[adjectivesIndex], animals[animalsIndex])
}
