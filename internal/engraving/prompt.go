// Package engraving holds the style instructions sent with every uploaded photo.
package engraving

// Prompt is passed verbatim to the image model together with the customer's photo.
// Edit this text to change how previews are rendered.
const Prompt = `Convert the input image into a laser-engraving-ready illustration.

Style:

• Clean black-and-white line art

• Architectural ink sketch / engraving style

• Thin, consistent vector-like outlines

• No color, no grayscale shading, no gradients

• White background only

Details:

• Preserve all major edges, contours, and structural details

• Use minimal cross-hatching only where necessary for depth

• Emphasize outlines over texture

• Simplify complex textures into clean lines

Technical constraints:

• High contrast (pure black lines on pure white)

• No shadows, no soft shading, no fills

• No background noise or artifacts

• Suitable for CNC / laser engraving on wood or acrylic

Final look:

• Hand-drawn architectural engraving

• Etched illustration aesthetic

• Similar to traditional woodcut or pen-and-ink engraving
`
