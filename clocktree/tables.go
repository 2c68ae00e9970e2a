package clocktree

// LMK04828 register image exported from TICS Pro. Registers are listed in the
// order the device expects them: reset (0x000 twice), then ascending address,
// with the PLL2 block (0x171-0x17D) ahead of 0x166-0x16E.
var defaultConditionerRegisters = []Register{
	{0x0000, 0x90}, {0x0000, 0x10}, {0x0002, 0x00}, {0x0003, 0x06},
	{0x0004, 0xD0}, {0x0005, 0x5B}, {0x0006, 0x00}, {0x000C, 0x51},
	{0x000D, 0x04}, {0x0100, 0x6A}, {0x0101, 0x55}, {0x0102, 0x55},
	{0x0103, 0x01}, {0x0104, 0x22}, {0x0105, 0x00}, {0x0106, 0x73},
	{0x0107, 0x03}, {0x0108, 0x6A}, {0x0109, 0x55}, {0x010A, 0x55},
	{0x010B, 0x00}, {0x010C, 0x22}, {0x010D, 0x00}, {0x010E, 0xF0},
	{0x010F, 0x30}, {0x0110, 0x6A}, {0x0111, 0x55}, {0x0112, 0x55},
	{0x0113, 0x01}, {0x0114, 0x22}, {0x0115, 0x00}, {0x0116, 0x73},
	{0x0117, 0x03}, {0x0118, 0x6A}, {0x0119, 0x55}, {0x011A, 0x55},
	{0x011B, 0x01}, {0x011C, 0x22}, {0x011D, 0x00}, {0x011E, 0x72},
	{0x011F, 0x03}, {0x0120, 0x74}, {0x0121, 0x55}, {0x0122, 0x55},
	{0x0123, 0x01}, {0x0124, 0x22}, {0x0125, 0x00}, {0x0126, 0x70},
	{0x0127, 0x33}, {0x0128, 0x6A}, {0x0129, 0x55}, {0x012A, 0x55},
	{0x012B, 0x00}, {0x012C, 0x22}, {0x012D, 0x00}, {0x012E, 0xF0},
	{0x012F, 0x30}, {0x0130, 0x6A}, {0x0131, 0x55}, {0x0132, 0x55},
	{0x0133, 0x01}, {0x0134, 0x22}, {0x0135, 0x00}, {0x0136, 0x73},
	{0x0137, 0x03}, {0x0138, 0x00}, {0x0139, 0x03}, {0x013A, 0x01},
	{0x013B, 0x40}, {0x013C, 0x00}, {0x013D, 0x01}, {0x013E, 0x03},
	{0x013F, 0x02}, {0x0140, 0x09}, {0x0141, 0x00}, {0x0142, 0x00},
	{0x0143, 0x31}, {0x0144, 0xFF}, {0x0145, 0x7F}, {0x0146, 0x18},
	{0x0147, 0x1A}, {0x0148, 0x06}, {0x0149, 0x46}, {0x014A, 0x06},
	{0x014B, 0x06}, {0x014C, 0x00}, {0x014D, 0x00}, {0x014E, 0xC0},
	{0x014F, 0x7F}, {0x0150, 0x13}, {0x0151, 0x02}, {0x0152, 0x00},
	{0x0153, 0x00}, {0x0154, 0x7D}, {0x0155, 0x00}, {0x0156, 0x7D},
	{0x0157, 0x03}, {0x0158, 0xC0}, {0x0159, 0x07}, {0x015A, 0xD0},
	{0x015B, 0xDA}, {0x015C, 0x20}, {0x015D, 0x00}, {0x015E, 0x00},
	{0x015F, 0x0B}, {0x0160, 0x00}, {0x0161, 0x19}, {0x0162, 0x44},
	{0x0163, 0x00}, {0x0164, 0x00}, {0x0165, 0xA0}, {0x0171, 0xAA},
	{0x0172, 0x02}, {0x017C, 0x15}, {0x017D, 0x33}, {0x0166, 0x00},
	{0x0167, 0x00}, {0x0168, 0xC0}, {0x0169, 0x59}, {0x016A, 0x20},
	{0x016B, 0x00}, {0x016C, 0x00}, {0x016D, 0x00}, {0x016E, 0x13},
	{0x0173, 0x00}, {0x0182, 0x00}, {0x0183, 0x00}, {0x0184, 0x00},
	{0x0185, 0x00}, {0x0188, 0x00}, {0x0189, 0x00}, {0x018A, 0x00},
	{0x018B, 0x00}, {0x1FFD, 0x00}, {0x1FFE, 0x00}, {0x1FFF, 0x53},
}

// LMX2594 image, R112 down to R0. Both synthesizers receive the same image.
var defaultSynthesizerWords = []Word{
	0x700000, 0x6F0000, 0x6E0000, 0x6D0000, 0x6C0000, 0x6B0000, 0x6A0000, 0x690021,
	0x680000, 0x670000, 0x663F80, 0x650011, 0x640000, 0x630000, 0x620200, 0x610888,
	0x600000, 0x5F0000, 0x5E0000, 0x5D0000, 0x5C0000, 0x5B0000, 0x5A0000, 0x590000,
	0x580000, 0x570000, 0x560000, 0x55D300, 0x540001, 0x530000, 0x521E00, 0x510000,
	0x506666, 0x4F0026, 0x4E00E5, 0x4D0000, 0x4C000C, 0x4B0940, 0x4A0000, 0x49003F,
	0x480001, 0x470081, 0x46C350, 0x450000, 0x4403E8, 0x430000, 0x4201F4, 0x410000,
	0x401388, 0x3F0000, 0x3E0322, 0x3D00A8, 0x3C0000, 0x3B0001, 0x3A8001, 0x390020,
	0x380000, 0x370000, 0x360000, 0x350000, 0x340820, 0x330080, 0x320000, 0x314180,
	0x300300, 0x2F0300, 0x2E07FC, 0x2DC0DF, 0x2C1F20, 0x2B0000, 0x2A0000, 0x290000,
	0x280000, 0x270001, 0x260000, 0x250104, 0x240140, 0x230004, 0x220000, 0x211E21,
	0x200393, 0x1F43EC, 0x1E318C, 0x1D318C, 0x1C0488, 0x1B0002, 0x1A0DB0, 0x190624,
	0x18071A, 0x17007C, 0x160001, 0x150401, 0x14C848, 0x1327B7, 0x120064, 0x110117,
	0x100080, 0x0F064F, 0x0E1E40, 0x0D4000, 0x0C5001, 0x0B00A8, 0x0A10D8, 0x090604,
	0x082000, 0x0740B2, 0x06C802, 0x0500C8, 0x040C43, 0x030642, 0x020500, 0x010809,
	0x00241C,
}
