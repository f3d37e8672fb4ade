package common

var NoColour = noColour
