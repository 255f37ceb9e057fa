package internal

import (
	"fmt"
	"os"
	"os/exec"
)

const (
	LINUX_USER        = "motioneye-bridge"
	LINUX_BIN         = "/usr/local/bin/motioneye-bridge"
	LINUX_CONFIG_FILE = "/etc/motioneye-bridge/config.json"
	LINUX_LOG_DIR     = "/var/log/motioneye-bridge"
)

// PrepareLinuxServiceEnv creates the motioneye-bridge linux user and group,
// copies the binary to /usr/local/bin, seeds the config file in
// /etc/motioneye-bridge and creates the log directory.
func PrepareLinuxServiceEnv() error {
	fmt.Println("1. creating motioneye-bridge user and group")
	cmd := exec.Command("useradd", "-r", "-s", "/bin/false", LINUX_USER)
	if err := cmd.Run(); err != nil {
		fmt.Println("1. error creating motioneye-bridge user , most likely already exists : " + err.Error())
	}

	fullBinaryPath, err := os.Executable()
	if err != nil {
		return err
	}
	fmt.Println("2. copying " + fullBinaryPath + " to " + LINUX_BIN)
	cmd = exec.Command("cp", "-f", fullBinaryPath, LINUX_BIN)
	if err = cmd.Run(); err != nil {
		fmt.Println("2. error copying motioneye-bridge binary : " + err.Error())
		return err
	}

	fmt.Println("3. creating config folder")
	cmd = exec.Command("mkdir", "-p", "/etc/motioneye-bridge")
	if err = cmd.Run(); err != nil {
		fmt.Println("3. error creating config folder : " + err.Error())
		return err
	}

	if _, err = os.Stat("config.json"); !os.IsNotExist(err) {
		fmt.Println("4. copying local config file to /etc/motioneye-bridge")
		cmd = exec.Command("cp", "config.json", "/etc/motioneye-bridge")
		if err = cmd.Run(); err != nil {
			fmt.Println("4. error copying config file : " + err.Error())
			return err
		}
	} else {
		fmt.Println("4. no local config file found, skipping")
	}

	fmt.Println("5. creating log directory")
	cmd = exec.Command("mkdir", "-p", LINUX_LOG_DIR)
	if err = cmd.Run(); err != nil {
		fmt.Println("5. error creating log directory : " + err.Error())
		return err
	}
	cmd = exec.Command("chown", "-R", LINUX_USER+":"+LINUX_USER, LINUX_LOG_DIR)
	if err = cmd.Run(); err != nil {
		fmt.Println("5. error changing owner of log directory : " + err.Error())
		return err
	}
	return nil
}

// RemoveLinuxServiceEnv removes the user, binary, config and log directory
// created by PrepareLinuxServiceEnv.
func RemoveLinuxServiceEnv() error {
	fmt.Println("1. removing motioneye-bridge user and group")
	cmd := exec.Command("userdel", "-r", LINUX_USER)
	if err := cmd.Run(); err != nil {
		fmt.Println("1. error removing motioneye-bridge user : " + err.Error())
	}

	fmt.Println("2. removing motioneye-bridge binary from /usr/local/bin")
	cmd = exec.Command("rm", "-f", LINUX_BIN)
	if err := cmd.Run(); err != nil {
		fmt.Println("2. error removing motioneye-bridge binary : " + err.Error())
	}

	fmt.Println("3. removing config file from /etc/motioneye-bridge")
	cmd = exec.Command("rm", "-f", LINUX_CONFIG_FILE)
	if err := cmd.Run(); err != nil {
		fmt.Println("3. error removing config file : " + err.Error())
	}

	fmt.Println("4. removing log directory")
	cmd = exec.Command("rm", "-rf", LINUX_LOG_DIR)
	if err := cmd.Run(); err != nil {
		fmt.Println("4. error removing log directory : " + err.Error())
	}
	return nil
}
