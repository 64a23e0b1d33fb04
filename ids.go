package flexnor

var (
	flashIDWinbondW25Q128JV   = [3]byte{0xEF, 0x40, 0x18}
	flashIDWinbondW25Q128JVIM = [3]byte{0xEF, 0x70, 0x18}
	flashIDWinbondW25Q64JV    = [3]byte{0xEF, 0x40, 0x17}
)

var knownFlashIDs = map[[3]byte]string{
	flashIDWinbondW25Q128JV:   "Winbond W25Q128JV",
	flashIDWinbondW25Q128JVIM: "Winbond W25Q128JV-IM",
	flashIDWinbondW25Q64JV:    "Winbond W25Q64JV",
}

// flashName decodes a JEDEC id into a part name, empty for unknown ids.
func flashName(id [3]byte) string {
	return knownFlashIDs[id]
}
