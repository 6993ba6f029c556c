package collect

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
)

// WriteTemplate creates a telemetry CSV containing only the expected header
// row, for use as a reference or as a skeleton to populate by hand.
func WriteTemplate(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create template dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create template: %w", err)
	}
	defer f.Close()
	w := csv.NewWriter(f)
	if err := w.Write(TemplateColumns()); err != nil {
		return fmt.Errorf("write template header: %w", err)
	}
	w.Flush()
	return w.Error()
}

// TemplateColumns returns the full expected column set of the telemetry
// format, in source order.
func TemplateColumns() []string {
	cols := make([]string, len(templateColumns))
	copy(cols, templateColumns)
	return cols
}

// The column inventory of the instrument's CSV output.
var templateColumns = []string{
	"amBer_Version", "TimeStamp", "Iteration/Sweep", "Test_Description", "collection_tool",
	"collection_tool_version", "MAC_Address", "Port_Number", "Label_cage", "Phy_Manager_State",
	"Protocol", "Speed_[Gb/s]", "Ethernet_Protocol_Active", "Link_Down",
	"successful_recovery_events", "Raw_BER_lane0", "Raw_BER_lane1", "Raw_BER_lane2",
	"Raw_BER_lane3", "Raw_BER_lane4", "Raw_BER_lane5", "Raw_BER_lane6", "Raw_BER_lane7",
	"Link_Down_GB_host", "Link_Down_GB_line", "Active_FEC", "USR-T_Link_Down",
	"USR-M_Link_Down", "Time_since_last_clear_[Min]", "Conf_Level_Raw_BER", "Raw_BER",
	"Effective_BER", "FC_Zero_Hist", "Number_of_histogram_bins", "bin0_high_value",
	"bin0_low_value", "bin1_high_value", "bin1_low_value", "bin2_high_value", "bin2_low_value",
	"bin3_high_value", "bin3_low_value", "bin4_high_value", "bin4_low_value", "bin5_high_value",
	"bin5_low_value", "bin6_high_value", "bin6_low_value", "bin7_high_value", "bin7_low_value",
	"bin8_high_value", "bin8_low_value", "bin9_high_value", "bin9_low_value",
	"bin10_high_value", "bin10_low_value", "bin11_high_value", "bin11_low_value",
	"bin12_high_value", "bin12_low_value", "bin13_high_value", "bin13_low_value",
	"bin14_high_value", "bin14_low_value", "bin15_high_value", "bin15_low_value", "hist0",
	"hist1", "hist2", "hist3", "hist4", "hist5", "hist6", "hist7", "hist8", "hist9", "hist10",
	"hist11", "hist12", "hist13", "hist14", "hist15", "Raw_Errors_lane0", "Raw_Errors_lane1",
	"Raw_Errors_lane2", "Raw_Errors_lane3", "Raw_Errors_lane4", "Raw_Errors_lane5",
	"Raw_Errors_lane6", "Raw_Errors_lane7", "Effective_Errors", "Symbol_Errors",
	"module_oper_status", "module_error_type", "ethernet_compliance_code",
	"ext_ethernet_compliance_code", "Memory_map_rev", "Vendor_OUI", "Cable_PN", "Cable_SN",
	"cable_technology", "linear_direct_drive", "cable_breakout", "cable_type", "cable_vendor",
	"cable_length", "smf_length", "cable_identifier", "cable_power_class", "max_power",
	"cable_rx_amp", "cable_rx_pre_emphasis", "cable_rx_post_emphasis", "cable_tx_equalization",
	"cable_attenuation_53g", "cable_attenuation_25g", "cable_attenuation_12g",
	"cable_attenuation_7g", "cable_attenuation_5g", "tx_input_freq_sync", "rx_cdr_cap",
	"tx_cdr_cap", "rx_cdr_state", "tx_cdr_state", "vendor_name", "vendor_rev",
	"module_fw_version", "rx_power_lane_0", "rx_power_lane_1", "rx_power_lane_2",
	"rx_power_lane_3", "rx_power_lane_4", "rx_power_lane_5", "rx_power_lane_6",
	"rx_power_lane_7", "tx_power_lane_0", "tx_power_lane_1", "tx_power_lane_2",
	"tx_power_lane_3", "tx_power_lane_4", "tx_power_lane_5", "tx_power_lane_6",
	"tx_power_lane_7", "tx_bias_lane_0", "tx_bias_lane_1", "tx_bias_lane_2", "tx_bias_lane_3",
	"tx_bias_lane_4", "tx_bias_lane_5", "tx_bias_lane_6", "tx_bias_lane_7",
	"temperature_high_th", "temperature_low_th", "voltage_high_th", "voltage_low_th",
	"rx_power_high_th", "rx_power_low_th", "tx_power_high_th", "tx_power_low_th",
	"tx_bias_high_th", "tx_bias_low_th", "wavelength", "wavelength_tolerance", "Module_st",
	"Dp_st_lane0", "Dp_st_lane1", "Dp_st_lane2", "Dp_st_lane3", "Dp_st_lane4", "Dp_st_lane5",
	"Dp_st_lane6", "Dp_st_lane7", "rx_output_valid", "Nominal_Bit_Rate", "Rx_Power_Type",
	"Date_Code", "Module_Temperature", "Module_Voltage", "Active_set_host_compliance_code",
	"Active_set_media_compliance_code", "error_code_response", "Temp_flags", "Vcc_flags",
	"Mod_fw_fault", "Dp_fw_fault", "tx_fault", "tx_los", "tx_cdr_lol", "tx_ad_eq_fault",
	"tx_power_hi_al", "tx_power_lo_al", "tx_power_hi_war", "tx_power_lo_war", "tx_bias_hi_al",
	"tx_bias_lo_al", "tx_bias_hi_war", "tx_bias_lo_war", "rx_los", "rx_cdr_lol",
	"rx_power_hi_al", "rx_power_lo_al", "rx_power_hi_war", "rx_power_lo_war", "laser_status",
	"laser_restriction", "els_oper_state", "els_laser_fault_state", "MCM_system", "Tile_Num",
	"slot_index", "Module_Lanes_Used", "PLL_Index", "Retimer_valid", "Retimer_dp_num",
	"Retimer_die_num", "Device_Description", "Device_Part_Number", "Device_FW_Version",
	"Device_ID", "SerDes_Technology_(16nm/7nm_5nm)", "System_Voltage", "System_Current",
	"Voltage/Current_sensor_name", "Chip_Temp", "Temp_sensor_name", "Device_SN", "UPHY_version",
	"BKV_version", "Lane0_pre_3_tap", "Lane1_pre_3_tap", "Lane2_pre_3_tap", "Lane3_pre_3_tap",
	"Lane4_pre_3_tap", "Lane5_pre_3_tap", "Lane6_pre_3_tap", "Lane7_pre_3_tap",
	"Lane0_pre_2_tap", "Lane1_pre_2_tap", "Lane2_pre_2_tap", "Lane3_pre_2_tap",
	"Lane4_pre_2_tap", "Lane5_pre_2_tap", "Lane6_pre_2_tap", "Lane7_pre_2_tap",
	"Lane0_pre_1_tap", "Lane1_pre_1_tap", "Lane2_pre_1_tap", "Lane3_pre_1_tap",
	"Lane4_pre_1_tap", "Lane5_pre_1_tap", "Lane6_pre_1_tap", "Lane7_pre_1_tap",
	"Lane0_main_tap", "Lane1_main_tap", "Lane2_main_tap", "Lane3_main_tap", "Lane4_main_tap",
	"Lane5_main_tap", "Lane6_main_tap", "Lane7_main_tap", "Lane0_post_1_tap",
	"Lane1_post_1_tap", "Lane2_post_1_tap", "Lane3_post_1_tap", "Lane4_post_1_tap",
	"Lane5_post_1_tap", "Lane6_post_1_tap", "Lane7_post_1_tap", "Advanced_Status_Opcode",
	"Status_Message", "eth_an_fsm_state", "ib_phy_fsm_state", "phy_manager_link_enabled",
	"core_to_phy_link_enabled", "cable_proto_cap", "loopback_mode", "fec_mode_request",
	"profile_fec_in_use", "up_reason_pwr", "up_reason_drv", "up_reason_mng",
	"time_to_link_up_msec", "fast_link_up_status", "time_to_link_up_phy_up_to_active",
	"time_to_link_up_sd_to_phy_up", "time_to_link_up_disable_to_sd",
	"time_to_link_up_disable_to_pd", "time_of_module_conf_done_up",
	"time_of_module_conf_done_down", "time_logical_init_to_active", "down_blame",
	"local_reason_opcode", "remote_reason_opcode", "e2e_reason_opcode",
	"time_to_link_down_to_disable", "time_to_link_down_to_rx_loss", "num_of_raw_ber_alarms",
	"num_of_symbol_ber_alarms", "num_of_eff_ber_alarms", "last_raw_ber", "last_eff_ber",
	"last_symbol_ber", "max_raw_ber", "max_effective_ber", "max_symbol_ber", "min_raw_ber",
	"min_effective_ber", "min_symbol_ber", "snr_media_lane0", "snr_media_lane1",
	"snr_media_lane2", "snr_media_lane3", "snr_media_lane4", "snr_media_lane5",
	"snr_media_lane6", "snr_media_lane7", "snr_host_lane0", "snr_host_lane1", "snr_host_lane2",
	"snr_host_lane3", "snr_host_lane4", "snr_host_lane5", "snr_host_lane6", "snr_host_lane7",
	"voltage_pemi", "module_st_pemi", "rx_power_lane0_pemi", "rx_power_lane1_pemi",
	"rx_power_lane2_pemi", "rx_power_lane3_pemi", "rx_power_lane4_pemi", "rx_power_lane5_pemi",
	"rx_power_lane6_pemi", "rx_power_lane7_pemi", "tx_power_lane0_pemi", "tx_power_lane1_pemi",
	"tx_power_lane2_pemi", "tx_power_lane3_pemi", "tx_power_lane4_pemi", "tx_power_lane5_pemi",
	"tx_power_lane6_pemi", "tx_power_lane7_pemi", "tx_bias_lane0_pemi", "tx_bias_lane1_pemi",
	"tx_bias_lane2_pemi", "tx_bias_lane3_pemi", "tx_bias_lane4_pemi", "tx_bias_lane5_pemi",
	"tx_bias_lane6_pemi", "tx_bias_lane7_pemi", "dp_st_lane0_pemi", "dp_st_lane1_pemi",
	"dp_st_lane2_pemi", "dp_st_lane3_pemi", "dp_st_lane4_pemi", "dp_st_lane5_pemi",
	"dp_st_lane6_pemi", "dp_st_lane7_pemi", "oe_ts1_temperature", "els_ts1_temperature",
	"laser_frequency_error_lane0", "laser_frequency_error_lane1", "laser_frequency_error_lane2",
	"laser_frequency_error_lane3", "laser_frequency_error_lane4", "laser_frequency_error_lane5",
	"laser_frequency_error_lane6", "laser_frequency_error_lane7",
	"cooled_laser_temperature_lane0", "cooled_laser_temperature_lane1",
	"cooled_laser_temperature_lane2", "cooled_laser_temperature_lane3",
	"cooled_laser_temperature_lane4", "cooled_laser_temperature_lane5",
	"cooled_laser_temperature_lane6", "cooled_laser_temperature_lane7", "icc_monitor",
	"els_power_consumption", "pre_fec_ber_min_media", "pre_fec_ber_min_host",
	"pre_fec_ber_max_media", "pre_fec_ber_max_host", "pre_fec_ber_avg_media",
	"pre_fec_ber_avg_host", "pre_fec_ber_val_media", "pre_fec_ber_val_host", "pre_fec_ber_cap",
	"temp_threshold_1", "temp_threshold_2", "temp_threshold_3", "temp_threshold_4",
	"temp_thr_1_counter", "temp_thr_2_counter", "temp_thr_3_counter", "temp_thr_4_counter",
	"abs_max_temp_change", "operational_recovery", "total_successful_recovery_events",
	"successful_recovery_events_cnt", "unintentional_link_down_events",
	"intentional_link_down_events", "time_in_last_host_logical_recovery",
	"time_in_last_host_serdes_feq_recovery", "time_in_last_module_tx_disable_recovery",
	"time_in_last_module_datapath_full_toggle_recovery", "total_time_in_host_logical_recovery",
	"total_time_in_host_serdes_feq_recovery",
	"total_time_in_module_datapath_full_toggle_recovery", "total_host_logical_recovery_count",
	"total_host_serdes_feq_recovery_count", "total_module_tx_disable_recovery_count",
	"total_module_datapath_full_toggle_recovery_count",
	"total_host_logical_succesful_recovery_count",
	"total_host_serdes_feq_succesful_recovery_count",
	"total_module_tx_disable_succesful_recovery_count",
	"total_module_datapath_full_toggle_succesful_recovery_count", "time_since_last_recovery",
	"last_host_logical_recovery_attempts_count", "last_host_serdes_feq_attempts_count",
	"time_between_last_2_recoveries", "last_rs_fec_uncorrectable_during_recovery",
}
