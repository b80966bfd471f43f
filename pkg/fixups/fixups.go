// Package fixups holds the curated knowledge that the register header cannot
// express: definitions to ignore because they overlap or are defined twice,
// and hints explaining registers known to differ for uninteresting reasons.
package fixups

import "maps"

// Set is a collection of deny-lists and register hints. The zero value and a
// nil *Set ignore nothing and carry no hints.
type Set struct {
	IgnoredRegisters map[string]string // header symbol -> reason
	IgnoredMasks     map[string]string // field symbol -> reason
	Hints            map[string]string // register name -> hint
}

// New creates an empty set.
func New() *Set {
	return &Set{
		IgnoredRegisters: make(map[string]string),
		IgnoredMasks:     make(map[string]string),
		Hints:            make(map[string]string),
	}
}

// Default returns a fresh copy of the built-in tables.
func Default() *Set {
	return &Set{
		IgnoredRegisters: maps.Clone(defaultIgnoredRegisters),
		IgnoredMasks:     maps.Clone(defaultIgnoredMasks),
		Hints:            maps.Clone(defaultHints),
	}
}

// IgnoreRegister reports whether the register symbol is deny-listed.
func (s *Set) IgnoreRegister(name string) bool {
	if s == nil {
		return false
	}
	_, ok := s.IgnoredRegisters[name]
	return ok
}

// IgnoreMask reports whether the field symbol is deny-listed.
func (s *Set) IgnoreMask(name string) bool {
	if s == nil {
		return false
	}
	_, ok := s.IgnoredMasks[name]
	return ok
}

// Hint returns the hint for a register name, or "".
func (s *Set) Hint(register string) string {
	if s == nil {
		return ""
	}
	return s.Hints[register]
}

// Merge copies all entries of other into s, overriding existing ones.
func (s *Set) Merge(other *Set) {
	if other == nil {
		return
	}
	if s.IgnoredRegisters == nil {
		s.IgnoredRegisters = make(map[string]string)
	}
	if s.IgnoredMasks == nil {
		s.IgnoredMasks = make(map[string]string)
	}
	if s.Hints == nil {
		s.Hints = make(map[string]string)
	}
	maps.Copy(s.IgnoredRegisters, other.IgnoredRegisters)
	maps.Copy(s.IgnoredMasks, other.IgnoredMasks)
	maps.Copy(s.Hints, other.Hints)
}

var defaultIgnoredMasks = map[string]string{
	"SYS_CFG_SW_OFFLOAD_EN":    "",
	"SYS_CFG_SPS_LDO_SEL":      "",
	"SYS_CFG_TRP_BT_EN":        "",
	"SYS_CFG_RTL_ID":           "",
	"MODE_AG_CHANNEL_20MHZ":    "",
	"HPON_FSM_BONDING_1T2R":    "",
	"SYS_CFG_CHIP_VER":         "Overlapping mask is also defined",
	"WMAC_TRXPTCL_CTL_BW_MASK": "More detailed bit description exists",
	"CCK0_AFE_RX_ANT_AB":       "Defined twice",
	"CCK0_AFE_RX_ANT_B":        "Defined twice",
	"MODE_AG_BW_20MHZ_8723B":   "Overlaps with more relevant definition",
	"MODE_AG_BW_40MHZ_8723B":   "Overlaps with more relevant definition",
	"MODE_AG_BW_80MHZ_8723B":   "Overlaps with more relevant definition",
	"SYS_CFG_VENDOR_ID":        "Contained in SYS_CFG_VENDOR_EXT_MASK",
	"LEDCFG0_DPDT_SELECT":      "Not available on RTL8188CUS",
}

// Registers which are problematic and not relevant for RTL8188CUS.
var defaultIgnoredRegisters = map[string]string{
	"REG_HOST_SUSP_CNT":            "Defined twice",
	"REG_Q0_INFO":                  "Also known as REG_VOQ_INFO",
	"REG_Q1_INFO":                  "Also known as REG_VIQ_INFO",
	"REG_Q2_INFO":                  "Also known as REG_BEQ_INFO",
	"REG_Q3_INFO":                  "Also known as REG_BKQ_INFO",
	"REG_MACID_SLEEP_3_8732B":      "Also known as REG_INIDATA_RATE_SEL",
	"REG_EARLY_MODE_CONTROL_8188E": "Also known as REG_MACID_DROP_8732A",
	"REG_MACID_SLEEP_2_8732B":      "Also known as REG_MACID_DROP_8732A",
	"REG_MBSSID_BCN_SPACE":         "Also known as REG_BCN_INTERVAL",
	"REG_FPGA0_XAB_RF_SW_CTRL":     "Covered by REG_FPGA0_X{A,B}_RF_SW_CTRL",
	"REG_FPGA0_XCD_RF_SW_CTRL":     "Covered by REG_FPGA0_X{C,D}_RF_SW_CTRL",
	"REG_FPGA0_XAB_RF_PARM":        "Covered by REG_FPGA0_X{A,B}_RF_PARM",
	"REG_FPGA0_XCD_RF_PARM":        "Covered by REG_FPGA0_X{C,D}_RF_PARM",
	"REG_RX_DMA_CTRL_8723B":        "Not available on RTL8188CUS",
}

var defaultHints = map[string]string{
	"TSFTR":                    "Ignore (Timer)",
	"TSFTR1":                   "Ignore (Timer)",
	"INIT_TSFTR":               "Ignore (Timer)",
	"TSFTR1_OVERFLOW":          "Ignore (Timer)",
	"FPGA0_POWER_SAVE":         "Bit 28 never set by [rtl]8192cu",
	"FPGA0_XB_HSSI_PARM1":      "Ignore (RF B path)",
	"FPGA0_XB_HSSI_PARM2":      "Ignore (RF B path)",
	"FPGA0_XB_LSSI_PARM":       "Ignore (RF B path)",
	"HSPI_XB_READBACK":         "Ignore (RF B path)",
	"FPGA0_XB_LSSI_READBACK":   "Ignore (RF B path)",
	"FPGA0_XB_RF_SW_CTRL":      "Ignore (RF B path)",
	"OFDM0_XB_RX_IQ_IMBALANCE": "Ignore (RF B path)",
	"OFDM0_XB_TX_IQ_IMBALANCE": "Ignore (RF B path)",
	"TX_AGC_B_RATE18_06":       "Ignore (RF B path)",
	"TX_AGC_B_RATE54_24":       "Ignore (RF B path)",
	"TX_AGC_B_CCK1_55_MCS32":   "Ignore (RF B path)",
	"TX_AGC_B_MCS03_MCS00":     "Ignore (RF B path)",
	"TX_AGC_B_MCS07_MCS04":     "Ignore (RF B path)",
	"TX_AGC_B_MCS11_MCS08":     "Ignore (RF B path)",
	"TX_AGC_B_MCS15_MCS12":     "Ignore (RF B path)",
	"TX_AGC_B_CCK11_A_CCK2_11": "Ignore (RF B path)",
	"RETRY_LIMIT":              "rtl8xxxu: Adjusted by mac80211",
	"SPEC_SIFS":                "Endian error in rtl8192cu?",
	"RXERR_RPT":                "Ignore (not a control register)",
	"NAV_UPPER":                "Setting to zero *reduces* performance!",
	"RXFF_PTR":                 "8192cu: unstable; probably to ignore",
	"MCUTST_2":                 "8192cu: unstable; probably to ignore",
	"TDECTRL":                  "8192cu: unstable; probably to ignore",
	"MULTI_BCNQ_OFFSET":        "8192cu: unstable; probably to ignore",
	"POWER_STATUS":             "Toggles often, probably to ignore!",
	"CAM_DEBUG":                "Toggles often, probably to ignore!",
	"RSV_CTRL":                 "8192cu: unstable (LEDCFG0)",
	"EFUSE_CTRL":               "Ignore (used of io on efuse)",
	"HMBOX_0":                  "Ignore (used for H2C)",
	"HMBOX_1":                  "Ignore (used for H2C)",
	"HMBOX_2":                  "Ignore (used for H2C)",
	"HMBOX_3":                  "Ignore (used for H2C)",
	"HMBOX_EXT_0":              "Ignore (used for H2C)",
	"HMBOX_EXT_1":              "Ignore (used for H2C)",
	"HMBOX_EXT_2":              "Ignore (used for H2C)",
	"HMBOX_EXT_3":              "Ignore (used for H2C)",
	"MCU":                      "Ignore (MCU control)",
	"GPIO_OUTSTS":              "Simple write does not work",
}
