// Package features extracts quantitative crop-health descriptors from images.
//
// This package implements the image feature-extraction pipeline that runs
// before a crop photo is handed to the vision-reasoning model. Given a decoded
// image it produces a FeatureReport: color statistics in RGB, HSV, and Lab,
// plant-health indicators (green-content ratio, lesion-like spots, brown or
// yellow discoloration, dark necrotic areas), texture and sharpness metrics,
// and the dominant color palette. The report is serialized into a fixed text
// block that accompanies the image in the vision prompt.
//
// # Pipeline
//
// Extraction is a pure, single-pass pipeline with no internal state:
//
//  1. Color statistics: per-channel mean/std in RGB, HSV and Lab means via
//     go-colorful, luma-based brightness and contrast
//  2. Health indicators: green-pixel fraction, Canny edge map plus contour
//     analysis for spot detection, hue-band thresholding for brown/yellow,
//     low-luma thresholding for dark areas
//  3. Texture: Laplacian response variance (sharpness) and windowed local
//     variance
//  4. Dominant colors: deterministic k-means over a downsampled pixel set
//
// The same image always yields the same report. All thresholds are fixed
// package constants (see thresholds.go); nothing is derived per image.
//
// # Concurrency
//
// Extract holds no shared mutable state and may be called concurrently for
// independent images. Each call owns its input image for the duration.
//
// # Degenerate Inputs
//
// Uniform or otherwise degenerate images degrade to well-defined values
// (zero variance, zero spots, empty palette entries are never emitted) rather
// than failing. Division guards keep every ratio finite.
package features
