// Package hw provides hardware collaborators on periph.io: a BMx280
// pressure/temperature sensor on I²C, a GPIO indicator and an SSD1306 OLED
// used as a character grid.
package hw
