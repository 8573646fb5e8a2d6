// Package pixel implements the image buffer, color model and gradient
// types shared by every other package in sable: a fixed-dimension RGBA8
// pixel store with parallel bulk mutators, sRGB/HSL/HSV/Lab color
// conversions, and the gradient/fill types consumed by the rasterizer's
// shaders.
//
// It plays the role caire's image.go and grayscale.go play for that
// project, generalized from a seam-carving buffer into a general-purpose
// compositing buffer.
package pixel
